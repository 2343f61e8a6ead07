package domain

import "time"

// ContentKind distingue posts de comentarios como variante cerrada.
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindComment ContentKind = "comment"
)

// RawContent es el registro crudo que entrega el colector (scraper o API).
// Puede venir incompleto; el normalizador decide si sirve.
type RawContent struct {
	ID        string      `json:"id"`
	Kind      ContentKind `json:"kind"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	Subreddit string      `json:"subreddit"`
	Score     int         `json:"score"`
	CreatedAt time.Time   `json:"created_at"`
	Permalink string      `json:"permalink"`
}

// ContentItem es la forma canonica que consume el clasificador.
// Inmutable despues de la normalizacion.
type ContentItem struct {
	ID        string      `json:"id"`
	Kind      ContentKind `json:"kind"`
	Subreddit string      `json:"subreddit"`
	Text      string      `json:"text"`
	Score     int         `json:"score"`
	CreatedAt time.Time   `json:"created_at"`
	Permalink string      `json:"permalink"`
}
