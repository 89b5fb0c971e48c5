package activity

const (
	// Actor name and file name are joined in for forensic readability;
	// left joins keep entries visible after their user or file is gone.
	selectEntries = `
		SELECT a.id, a.event_type, a.actor_user_id, u.full_name, a.file_id, f.file_name, a.details, a.created_at
		FROM activity_log a
		LEFT JOIN users u ON u.id = a.actor_user_id
		LEFT JOIN files f ON f.id = a.file_id
	`
	SelectAllEntries = selectEntries + `
		ORDER BY a.id DESC
	`
	SelectEntriesByActor = selectEntries + `
		WHERE a.actor_user_id = $1
		ORDER BY a.id DESC
	`
	InsertEntry = `
		INSERT INTO activity_log (event_type, actor_user_id, file_id, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
)
