package service

import "errors"

// Business errors surfaced to the handler layer. Self-vote and identity
// failures carry distinct human-readable messages so the UI can show a
// login prompt or a "can't vote on your own room" toast instead of a
// generic failure.
var (
	ErrDesignNotFound    = errors.New("design not found")
	ErrThemeNotFound     = errors.New("theme not found")
	ErrVoteNotFound      = errors.New("no vote recorded for this design")
	ErrInvalidColor      = errors.New("background color must be a #RRGGBB hex value")
	ErrInvalidAssetIndex = errors.New("no asset at that position")
	ErrInvalidVoteType   = errors.New("vote type must be upvote or downvote")
	ErrInvalidDirection  = errors.New("z-index direction must be up or down")
	ErrSelfVote          = errors.New("you cannot vote on your own design")
	ErrDuplicateVote     = errors.New("you have already voted on this design")
	ErrAlreadySubmitted  = errors.New("you have already submitted a design for this theme")
	ErrDesignLocked      = errors.New("design has been submitted and can no longer be edited")
	ErrNotOwner          = errors.New("design belongs to another user")
	ErrUnauthorized      = errors.New("you must be signed in to do that")
	ErrInternal          = errors.New("internal server error")
)
