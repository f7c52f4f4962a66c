package transcript

import (
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("transcript not found")

type TranscriptRepository struct{}

type TranscriptRepositoryInterface interface {
	Insert(tx *sql.Tx, tr *Transcript) (int, error)
	GetByID(db *sql.DB, id int) (*Transcript, error)
	ListByUsername(db *sql.DB, username string) ([]*Transcript, error)
	UpdateWordCount(tx *sql.Tx, id, wordCount int) error
}

func NewTranscriptRepository() TranscriptRepositoryInterface {
	return &TranscriptRepository{}
}

// Insert persists a transcript document and returns its ID.
func (r *TranscriptRepository) Insert(tx *sql.Tx, tr *Transcript) (int, error) {
	query := `
		INSERT INTO transcripts (
			username, transcript, created_at
		)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int
	err := tx.QueryRow(
		query,
		tr.Username,
		tr.Text,
		tr.CreatedAt,
	).Scan(&id)

	if err != nil {
		logrus.WithError(err).Error("Failed to insert transcript")
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"transcript_id": id,
		"username":      tr.Username,
	}).Info("Transcript saved")

	return id, nil
}

// GetByID retrieves a transcript by ID
func (r *TranscriptRepository) GetByID(db *sql.DB, id int) (*Transcript, error) {
	query := `
		SELECT id, username, transcript, word_count, created_at
		FROM transcripts
		WHERE id = $1
	`

	tr := &Transcript{}
	err := db.QueryRow(query, id).Scan(
		&tr.ID,
		&tr.Username,
		&tr.Text,
		&tr.WordCount,
		&tr.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logrus.WithError(err).Error("Failed to get transcript by ID")
		return nil, err
	}

	return tr, nil
}

// ListByUsername retrieves all transcripts saved by a user, newest first.
func (r *TranscriptRepository) ListByUsername(db *sql.DB, username string) ([]*Transcript, error) {
	query := `
		SELECT id, username, transcript, word_count, created_at
		FROM transcripts
		WHERE username = $1
		ORDER BY created_at DESC
	`

	rows, err := db.Query(query, username)
	if err != nil {
		logrus.WithError(err).Error("Failed to list transcripts")
		return nil, err
	}
	defer rows.Close()

	transcripts := []*Transcript{}
	for rows.Next() {
		tr := &Transcript{}
		if err := rows.Scan(
			&tr.ID,
			&tr.Username,
			&tr.Text,
			&tr.WordCount,
			&tr.CreatedAt,
		); err != nil {
			return nil, err
		}
		transcripts = append(transcripts, tr)
	}

	return transcripts, rows.Err()
}

// UpdateWordCount writes the word count computed by the worker.
func (r *TranscriptRepository) UpdateWordCount(tx *sql.Tx, id, wordCount int) error {
	query := `
		UPDATE transcripts
		SET word_count = $1
		WHERE id = $2
	`

	result, err := tx.Exec(query, wordCount, id)
	if err != nil {
		logrus.WithError(err).Error("Failed to update word count")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
