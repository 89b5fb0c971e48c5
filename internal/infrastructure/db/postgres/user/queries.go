package user

const (
	SelectUsers = `
		SELECT id, uuid, email, full_name, password_hash, role, created_at
		FROM users
		ORDER BY id
	`
	SelectUserByUUID = `
		SELECT id, uuid, email, full_name, password_hash, role, created_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByEmail = `
		SELECT id, uuid, email, full_name, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (email, full_name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING
		  id, uuid, email, full_name, password_hash, role, created_at
	`
	DeleteSharesGrantedToUser = `
		DELETE FROM file_shares WHERE shared_with_user_id = $1
	`
	DeleteSharesOnUserFiles = `
		DELETE FROM file_shares
		WHERE file_id IN (SELECT id FROM files WHERE owner_id = $1)
	`
	DeleteUserFilesReturningKeys = `
		DELETE FROM files WHERE owner_id = $1
		RETURNING storage_key
	`
	DeleteUserByID = `
		DELETE FROM users WHERE id = $1
	`
)
