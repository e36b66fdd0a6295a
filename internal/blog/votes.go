package blog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blog/internal/models"
	"blog/internal/store"
)

type VoteState int

const (
	NoVote VoteState = iota
	UpVoted
	DownVoted
)

func (s VoteState) String() string {
	switch s {
	case UpVoted:
		return "up"
	case DownVoted:
		return "down"
	}
	return "none"
}

type VoteAction int

const (
	Upvote VoteAction = iota
	Downvote
	Unvote
)

func (a VoteAction) String() string {
	switch a {
	case Upvote:
		return "upvote"
	case Downvote:
		return "downvote"
	}
	return "unvote"
}

// VoteEffect is the storage change a transition needs.
type VoteEffect int

const (
	EffectNone VoteEffect = iota
	EffectInsert
	EffectFlip
	EffectDelete
)

const (
	MsgUpvoted      = "Successfully up voted this post"
	MsgAlreadyUp    = "Already up voted this post"
	MsgDownvoted    = "Successfully down voted this post"
	MsgAlreadyDown  = "Already down voted this post"
	MsgUnvoted      = "Successfully unvoted this post"
	MsgNotVotedPost = "You have not voted this post"
)

// NextVote is the ledger's transition function for one (user, post) pair.
func NextVote(state VoteState, action VoteAction) (VoteState, VoteEffect, string) {
	switch action {
	case Upvote:
		switch state {
		case UpVoted:
			return UpVoted, EffectNone, MsgAlreadyUp
		case DownVoted:
			return UpVoted, EffectFlip, MsgUpvoted
		}
		return UpVoted, EffectInsert, MsgUpvoted
	case Downvote:
		switch state {
		case DownVoted:
			return DownVoted, EffectNone, MsgAlreadyDown
		case UpVoted:
			return DownVoted, EffectFlip, MsgDownvoted
		}
		return DownVoted, EffectInsert, MsgDownvoted
	}
	if state == NoVote {
		return NoVote, EffectNone, MsgNotVotedPost
	}
	return NoVote, EffectDelete, MsgUnvoted
}

func stateOf(v models.Vote, found bool) VoteState {
	switch {
	case !found:
		return NoVote
	case v.Up:
		return UpVoted
	}
	return DownVoted
}

// Vote applies action for who on postID and returns the client message.
func (s *Service) Vote(ctx context.Context, who models.Principal, postID int64, action VoteAction) (string, error) {
	var msg string
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.PostByID(ctx, postID); err != nil {
			return notFound("post", postID, err)
		}

		v, err := tx.VoteFor(ctx, who.ID, postID)
		found := err == nil
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		next, effect, m := NextVote(stateOf(v, found), action)
		msg = m
		err = nil
		switch effect {
		case EffectInsert:
			err = tx.InsertVote(ctx, &models.Vote{Up: next == UpVoted, UserID: who.ID, PostID: postID})
		case EffectFlip:
			err = tx.SetVoteDirection(ctx, v.ID, next == UpVoted)
		case EffectDelete:
			err = tx.DeleteVote(ctx, v.ID)
		}
		if errors.Is(err, store.ErrDuplicate) {
			return &ConflictError{Message: "Vote already recorded for this post."}
		}
		return err
	})
	if err != nil {
		return "", err
	}
	log.Printf("vote %s uid=%d post=%d: %s", action, who.ID, postID, msg)
	return msg, nil
}

// TotalVotes returns up votes minus down votes of a post.
func (s *Service) TotalVotes(ctx context.Context, postID int64) (int, error) {
	up, down, err := s.store.VoteCounts(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("total votes: %w", err)
	}
	return up - down, nil
}

// ListVotes lists votes on postID, or all votes when postID is 0.
func (s *Service) ListVotes(ctx context.Context, postID int64) ([]models.Vote, error) {
	return s.store.ListVotes(ctx, postID)
}
