package stored_file

const (
	SelectStoredFiles = `
		SELECT f.id, f.uuid, u.uuid, f.project_id, f.task_id, f.file_name, f.category, f.mime_type, f.size_bytes, f.checksum, f.bucket, f.storage_key, f.address, f.created_at
		FROM stored_files f
		JOIN users u ON u.id = f.user_id
		WHERE f.user_id = $1
		  AND ($2::uuid IS NULL OR f.project_id = $2::uuid)
		  AND ($3::uuid IS NULL OR f.task_id = $3::uuid)
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT 50 OFFSET ( ($4::bigint - 1) * 50 )
	`
	InsertStoredFile = `
		WITH ins AS (
		  INSERT INTO stored_files (user_id, project_id, task_id, file_name, category, mime_type, size_bytes, checksum, bucket, storage_key, address)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		  RETURNING id, uuid, user_id, project_id, task_id, file_name, category, mime_type, size_bytes, checksum, bucket, storage_key, address, created_at
		)
		SELECT ins.id, ins.uuid, u.uuid, ins.project_id, ins.task_id, ins.file_name, ins.category, ins.mime_type, ins.size_bytes, ins.checksum, ins.bucket, ins.storage_key, ins.address, ins.created_at
		FROM ins
		JOIN users u ON u.id = ins.user_id
	`
)
