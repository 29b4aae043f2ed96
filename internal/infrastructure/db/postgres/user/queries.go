package user

const (
	SelectUserByID = `
		SELECT id, uuid, email, role, name, lastname, avatar_url, created_at, updated_at
		FROM users
		WHERE uuid = $1
	`
	SelectIdByUUID  = `SELECT id FROM users WHERE uuid = $1::uuid`
	UpdateAvatarURL = `
		UPDATE users
		SET avatar_url = $1,
		    updated_at = now()
		WHERE id = $2
	`
)
