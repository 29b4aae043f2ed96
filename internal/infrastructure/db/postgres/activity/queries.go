package activity

const (
	// InsertActivity resolves the internal user id from the uuid; no row is written for an unknown user.
	InsertActivity = `
		INSERT INTO activities (uuid, type, description, user_id, project_id, task_id, metadata, created_at)
		SELECT $1, $2, $3, u.id, $5, $6, $7, $8
		FROM users u
		WHERE u.uuid = $4::uuid
	`
)
