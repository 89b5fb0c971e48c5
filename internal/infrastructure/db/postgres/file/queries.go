package file

const (
	selectFiles = `
		SELECT f.id, f.uuid, f.owner_id, u.full_name, f.file_name, f.content_type, f.size_bytes, f.storage_key, f.uploaded_at
		FROM files f
		JOIN users u ON u.id = f.owner_id
	`
	SelectFileByUUID = selectFiles + `
		WHERE f.uuid = $1
	`
	SelectFilesByOwner = selectFiles + `
		WHERE f.owner_id = $1
		ORDER BY f.id DESC
	`
	SelectFilesSharedWith = selectFiles + `
		JOIN file_shares fs ON fs.file_id = f.id
		WHERE fs.shared_with_user_id = $1
		ORDER BY fs.id DESC
	`
	InsertFile = `
		INSERT INTO files (owner_id, file_name, content_type, size_bytes, storage_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uuid, uploaded_at
	`
	InsertShare = `
		INSERT INTO file_shares (file_id, shared_with_user_id, shared_by_user_id)
		VALUES ($1, $2, $3)
	`
	SelectShareExists = `
		SELECT EXISTS (
			SELECT 1 FROM file_shares
			WHERE file_id = $1 AND shared_with_user_id = $2
		)
	`
	SelectSharesByFile = `
		SELECT fs.id, tu.uuid, tu.email, tu.full_name, gu.email, fs.shared_at
		FROM file_shares fs
		JOIN users tu ON tu.id = fs.shared_with_user_id
		JOIN users gu ON gu.id = fs.shared_by_user_id
		WHERE fs.file_id = $1
		ORDER BY fs.id
	`
	DeleteShareByFileAndTarget = `
		DELETE FROM file_shares
		WHERE file_id = $1 AND shared_with_user_id = $2
	`
	DeleteSharesByFile = `
		DELETE FROM file_shares WHERE file_id = $1
	`
	DeleteFileByID = `
		DELETE FROM files WHERE id = $1
	`
)
