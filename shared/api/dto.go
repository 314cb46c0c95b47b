package api

import "time"

// Result is the envelope for create/delete outcomes.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type CreatePostResponse struct {
	PostId int64 `json:"post_id"`
}

type CreateCommentResponse struct {
	Result
	CommentId int64 `json:"comment_id,omitempty"`
}

type ImageResponse struct {
	Filename string `json:"filename"`
}

type CommentResponse struct {
	Id          int64           `json:"id"`
	Content     string          `json:"content"`
	ContentHTML string          `json:"content_html"`
	AuthorId    int64           `json:"author_id"`
	Author      string          `json:"author"`
	CreatedAt   time.Time       `json:"created_at"`
	Images      []ImageResponse `json:"images"`
	CanDelete   bool            `json:"can_delete"`
}

type PostResponse struct {
	Id              int64             `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	DescriptionHTML string            `json:"description_html"`
	PetType         string            `json:"pet_type"`
	LostLocation    string            `json:"lost_location"`
	ContactInfo     string            `json:"contact_info"`
	AuthorId        int64             `json:"author_id"`
	Author          string            `json:"author"`
	CreatedAt       time.Time         `json:"created_at"`
	Images          []ImageResponse   `json:"images"`
	Comments        []CommentResponse `json:"comments,omitempty"`
	CanDelete       bool              `json:"can_delete"`
}

type PostsResponse struct {
	Posts []PostResponse `json:"posts"`
}

type UserResponse struct {
	Id        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	RealName  *string   `json:"real_name,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
