package api

import (
	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/markdown"
)

// Raw fields carry the text as stored; *_html fields are the rendered form
// clients may insert into a page.
var renderer = markdown.New()

func NewPostResponse(p domain.Post) PostResponse {
	resp := PostResponse{
		Id:              p.Id,
		Title:           p.Title,
		Description:     p.Description,
		DescriptionHTML: renderer.Render(p.Description),
		PetType:         p.PetType,
		LostLocation:    p.LostLocation,
		ContactInfo:     p.ContactInfo,
		AuthorId:        p.OwnerId,
		Author:          p.Author,
		CreatedAt:       p.CreatedAt,
		Images:          make([]ImageResponse, 0, len(p.Images)),
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, ImageResponse{Filename: img.Filename})
	}
	for _, c := range p.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(c))
	}
	return resp
}

func NewCommentResponse(c domain.Comment) CommentResponse {
	resp := CommentResponse{
		Id:          c.Id,
		Content:     c.Content,
		ContentHTML: renderer.Render(c.Content),
		AuthorId:    c.OwnerId,
		Author:      c.Author,
		CreatedAt:   c.CreatedAt,
		Images:      make([]ImageResponse, 0, len(c.Images)),
	}
	for _, img := range c.Images {
		resp.Images = append(resp.Images, ImageResponse{Filename: img.Filename})
	}
	return resp
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		RealName:  u.RealName,
		Phone:     u.Phone,
		Location:  u.Location,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}
