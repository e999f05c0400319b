package reviews

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Review is a visitor submission. Approved is a moderation flag owned by the
// store; nothing in this module ever sets it to true.
type Review struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"` // 1-5
	Avatar    *string   `json:"avatar,omitempty"`
	Approved  bool      `json:"approved"`
}

// Initial is the avatar fallback shown when no avatar was uploaded.
func (r Review) Initial() string {
	return Initial(r.Name)
}

func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	ch, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(ch))
}

// Draft is the in-progress review form.
type Draft struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Role    string  `json:"role" validate:"required,max=100"`
	Content string  `json:"content" validate:"required,max=2000"`
	Rating  int     `json:"rating" validate:"gte=1,lte=5"`
	Avatar  *string `json:"avatar,omitempty" validate:"omitempty,url,max=500"`
}

// NewDraft returns the empty form state.
func NewDraft() Draft {
	return Draft{Rating: DefaultRating}
}

// Normalize trims free text and clamps the rating. A zero rating means the
// visitor never touched the stars and takes the form default.
func (d Draft) Normalize() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Role = strings.TrimSpace(d.Role)
	d.Content = strings.TrimSpace(d.Content)
	if d.Rating == 0 {
		d.Rating = DefaultRating
	}
	d.Rating = ClampRating(d.Rating)
	if d.Avatar != nil {
		a := strings.TrimSpace(*d.Avatar)
		if a == "" {
			d.Avatar = nil
		} else {
			d.Avatar = &a
		}
	}
	return d
}

func ClampRating(r int) int {
	switch {
	case r < MinRating:
		return MinRating
	case r > MaxRating:
		return MaxRating
	default:
		return r
	}
}

// Filter selects a slice of the reviews table. Limit 0 means no limit.
type Filter struct {
	ApprovedOnly bool
	Limit        int
}

func (f Filter) Key() string {
	scope := "all"
	if f.ApprovedOnly {
		scope = "approved"
	}
	return scope + ":" + strconv.Itoa(f.Limit)
}
