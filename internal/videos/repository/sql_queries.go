package repository

const (
	createVideoQuery = `INSERT INTO videos (title, description, category, source_file, processing_state)
					VALUES ($1, $2, $3, $4, $5) RETURNING *`
	getVideoByIDQuery = `SELECT video_id, title, description, category, source_file, thumbnail_file, preview_file,
					hls_path, processing_state, has_480p, has_720p, has_1080p, created_at, updated_at
					FROM videos WHERE video_id = $1`
	getVideosQuery = `SELECT video_id, title, description, category, source_file, thumbnail_file, preview_file,
					hls_path, processing_state, has_480p, has_720p, has_1080p, created_at, updated_at
					FROM videos ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	getTotalVideosQuery = `SELECT COUNT(video_id) FROM videos`
	// Field-level partial update: NULL params leave columns untouched and the
	// resolution flags only ever accumulate, so concurrent jobs never undo
	// each other's writes.
	updateFieldsQuery = `UPDATE videos
					SET source_file = COALESCE($1, source_file),
					    thumbnail_file = COALESCE($2, thumbnail_file),
					    preview_file = COALESCE($3, preview_file),
					    hls_path = COALESCE($4, hls_path),
					    processing_state = COALESCE($5, processing_state),
					    has_480p = has_480p OR COALESCE($6, FALSE),
					    has_720p = has_720p OR COALESCE($7, FALSE),
					    has_1080p = has_1080p OR COALESCE($8, FALSE),
					    updated_at = NOW()
					WHERE video_id = $9`
	deleteVideoQuery = `DELETE FROM videos WHERE video_id = $1`
)
