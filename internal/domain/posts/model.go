package posts

import "time"

// Post es una publicación de una mascota. Los contadores están denormalizados y
// siempre igualan la cantidad de likes/comments asociados.
type Post struct {
	ID     int64
	PetID  int64
	UserID int64

	ImageURL string
	Caption  string
	Location string

	LikesCount    int
	CommentsCount int

	CreatedAt time.Time
}

type Patch struct {
	Caption  *string
	Location *string
}

func (pa Patch) Apply(p *Post) {
	if pa.Caption != nil {
		p.Caption = *pa.Caption
	}
	if pa.Location != nil {
		p.Location = *pa.Location
	}
}

// WithDefaults deja los contadores en cero: solo el store los mueve.
func (p Post) WithDefaults() Post {
	p.LikesCount = 0
	p.CommentsCount = 0
	return p
}

// Like es único por (UserID, PostID).
type Like struct {
	ID        int64
	UserID    int64
	PostID    int64
	CreatedAt time.Time
}

type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}
