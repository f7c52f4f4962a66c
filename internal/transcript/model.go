package transcript

import "time"

type Transcript struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"transcript"`
	WordCount *int      `json:"word_count,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is the queue payload published after a transcript is saved.
type Event struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
