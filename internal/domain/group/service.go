package group

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	userdomain "chores-app-go/internal/domain/user"
)

const (
	maxGroupNameLength  = 50
	maxInviteCodeLength = 10
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		cache: noopCache{},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithCache makes group lookups by id go through cache. A non-positive ttl
// leaves caching off.
func (s *Service) WithCache(cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		return s
	}
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// ForgetGroups drops every cached group. Call it after the tables are reset.
func (s *Service) ForgetGroups() {
	s.cache.Clear()
}

// CreateGroup creates a group and moves the creator into it.
func (s *Service) CreateGroup(ctx context.Context, actor userdomain.Identity, name, inviteCode string) (*Group, error) {
	name = strings.TrimSpace(name)
	inviteCode = strings.TrimSpace(inviteCode)
	if !utf8.ValidString(name) || !utf8.ValidString(inviteCode) {
		return nil, fmt.Errorf("%w: name and invite_code must be valid UTF-8", ErrInvalidGroup)
	}
	if name == "" || utf8.RuneCountInString(name) > maxGroupNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidGroup, maxGroupNameLength)
	}
	if inviteCode == "" || utf8.RuneCountInString(inviteCode) > maxInviteCodeLength {
		return nil, fmt.Errorf("%w: invite_code must be 1-%d characters", ErrInvalidGroup, maxInviteCodeLength)
	}

	var result Group
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.IsNameTaken(ctx, name)
		if err != nil {
			return err
		}
		if taken {
			return ErrGroupNameTaken
		}

		group := Group{
			Name:       name,
			InviteCode: inviteCode,
		}
		if err := tx.CreateGroup(ctx, &group); err != nil {
			return err
		}

		if err := tx.SetUserGroup(ctx, actor.ID, &group.ID); err != nil {
			return err
		}

		result = group
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// JoinGroup checks the invite code by plain equality. On any failure the
// caller's group is left as it was.
func (s *Service) JoinGroup(ctx context.Context, actor userdomain.Identity, groupName, inviteCode string) (*Group, error) {
	groupName = strings.TrimSpace(groupName)
	if groupName == "" {
		return nil, fmt.Errorf("%w: group_name is required", ErrInvalidGroup)
	}

	var result Group
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		group, err := tx.GetGroupByName(ctx, groupName)
		if err != nil {
			return err
		}
		if group.InviteCode != strings.TrimSpace(inviteCode) {
			return ErrInvalidInviteCode
		}

		if err := tx.SetUserGroup(ctx, actor.ID, &group.ID); err != nil {
			return err
		}

		result = *group
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) LeaveGroup(ctx context.Context, actor userdomain.Identity) error {
	if actor.GroupID == nil {
		return ErrNotInGroup
	}
	return s.repo.SetUserGroup(ctx, actor.ID, nil)
}

// GetGroup returns the group if the caller is a member of it or an admin.
func (s *Service) GetGroup(ctx context.Context, actor userdomain.Identity, groupID int64) (*Group, error) {
	group, err := s.groupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessGroup(group.ID) {
		return nil, ErrForbidden
	}
	return group, nil
}

func (s *Service) groupByID(ctx context.Context, groupID int64) (*Group, error) {
	if group, ok := s.cache.Get(groupID); ok {
		return group, nil
	}
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(group, s.cacheTTL)
	return group, nil
}

func (s *Service) ListMembers(ctx context.Context, actor userdomain.Identity, groupID int64) ([]Member, error) {
	if _, err := s.GetGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, groupID)
}

// Stats counts, per member, the completed chores assigned to them.
func (s *Service) Stats(ctx context.Context, actor userdomain.Identity, groupID int64) ([]Contribution, error) {
	if _, err := s.GetGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	return s.repo.CompletedChoresByMember(ctx, groupID)
}

func (s *Service) Summary(ctx context.Context, actor userdomain.Identity, groupID int64, period Period) (*Summary, error) {
	if _, err := s.GetGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}

	now := s.now()
	since, err := windowStart(period, now)
	if err != nil {
		return nil, err
	}

	summary := Summary{
		GroupID: groupID,
		Period:  period,
		From:    since,
		To:      now,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		counts, err := tx.SummaryCounts(ctx, groupID, since, now)
		if err != nil {
			return err
		}
		contributors, err := tx.ContributionsSince(ctx, groupID, since)
		if err != nil {
			return err
		}

		summary.Counts = counts
		summary.Contributors = contributors
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.TopContributor, summary.LeastContributor = pickContributors(summary.Contributors)
	return &summary, nil
}
