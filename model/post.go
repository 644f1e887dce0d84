package model

// Post is a blog post document. Only id, title and text are interpreted;
// any other fields a client sends are stored and returned unchanged.
type Post map[string]interface{}

// Field names with a meaning of their own.
const (
	FieldID    = "id"
	FieldTitle = "title"
	FieldText  = "text"
)

// NewPost builds a post from a title and text
func NewPost(title, text string) Post {
	return Post{FieldTitle: title, FieldText: text}
}

// ID returns the post id and whether one is set
func (p Post) ID() (interface{}, bool) {
	id, ok := p[FieldID]
	if !ok || id == nil || id == "" {
		return nil, false
	}
	return id, true
}

// SetID sets the post id
func (p Post) SetID(id interface{}) {
	p[FieldID] = id
}

// Clone returns a shallow copy so callers can add fields without touching the original
func (p Post) Clone() Post {
	c := make(Post, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// SeedPosts are inserted the first time the posts collection is created
func SeedPosts() []Post {
	return []Post{
		NewPost(
			"Lorem ipsum",
			"Lorem ipsum dolor sit amet, consectetur adipisicing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
		),
		NewPost(
			"Sed egestas",
			"Sed egestas, ante et vulputate volutpat, eros pede semper est, vitae luctus metus libero eu augue. Morbi purus libero, faucibus adipiscing, commodo quis, gravida id, est. Sed lectus.",
		),
	}
}
