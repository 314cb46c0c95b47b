package pg

import "fmt"

// GetAllFilePaths lists every stored filename referenced by an image row or
// an avatar.
func (s *Storage) GetAllFilePaths() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT filename FROM post_images
		UNION
		SELECT filename FROM comment_images
		UNION
		SELECT avatar FROM users WHERE avatar IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to query referenced files: %w", err)
	}
	defer rows.Close()

	var filenames []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("failed to scan filename: %w", err)
		}
		filenames = append(filenames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate filenames: %w", err)
	}
	return filenames, nil
}
