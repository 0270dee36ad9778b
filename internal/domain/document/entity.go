package document

import "time"

// Collections used by the API.
const (
	UsersCollection = "users"
	TextsCollection = "texts"
)

// Fields stored in documents.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldText     = "text"
)

// Fields is the flat payload of a document.
type Fields map[string]string

// Clone returns a copy of f that is safe to mutate.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Document represents the documents table used by the gorm-backed store.
// Data holds the JSON encoding of Fields.
type Document struct {
	Collection string `gorm:"primaryKey;size:64"`
	ID         string `gorm:"primaryKey;size:191"`
	Data       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Document) TableName() string {
	return "documents"
}
