package service

import "github.com/IKUN2788/Lost-pet/shared/domain"

// CanDeletePost reports whether principal owns the post.
func CanDeletePost(principal domain.UserId, post domain.PostMetadata) bool {
	return principal == post.OwnerId
}

// CanDeleteComment lets the comment author and the owner of the parent post
// remove a comment.
func CanDeleteComment(principal domain.UserId, comment domain.Comment) bool {
	return principal == comment.OwnerId || principal == comment.PostOwnerId
}
