package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"chores-app-go/internal/config"
	"chores-app-go/internal/db"
	choresdomain "chores-app-go/internal/domain/chores"
	groupdomain "chores-app-go/internal/domain/group"
	userdomain "chores-app-go/internal/domain/user"
	choresrepo "chores-app-go/internal/repository/postgres/chores"
	grouprepo "chores-app-go/internal/repository/postgres/group"
	userrepo "chores-app-go/internal/repository/postgres/user"
	"chores-app-go/pkg/logger"
	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

type options struct {
	groups         int
	usersPerGroup  int
	choresPerGroup int
	completeRatio  float64
	adminUsername  string
	seed           int64
	skipMigrations bool
}

func main() {
	var opts options
	flag.IntVar(&opts.groups, "groups", 3, "number of groups to create")
	flag.IntVar(&opts.usersPerGroup, "users", 4, "members per group")
	flag.IntVar(&opts.choresPerGroup, "chores", 10, "chores per group")
	flag.Float64Var(&opts.completeRatio, "complete-ratio", 0.4, "share of assignments marked complete")
	flag.StringVar(&opts.adminUsername, "admin", "", "also create an admin user with this username")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed, 0 picks one from the clock")
	flag.BoolVar(&opts.skipMigrations, "skip-migrations", false, "do not apply migrations first")
	flag.Parse()

	log := logger.NewFromEnv()

	if err := run(context.Background(), opts, log); err != nil {
		log.Critical("seed: failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log logger.Logger) error {
	if opts.groups < 1 || opts.usersPerGroup < 1 || opts.choresPerGroup < 0 {
		return errors.New("groups and users must be positive")
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	log.Info("seed: starting", "seed", seed)

	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := dbConn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if !opts.skipMigrations {
		if err := db.Migrate(ctx, dbConn); err != nil {
			return err
		}
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	groups := groupdomain.NewService(grouprepo.NewPostgres(dbConn))
	chores := choresdomain.NewService(choresrepo.NewPostgres(dbConn))

	if opts.adminUsername != "" {
		admin, err := createAdmin(ctx, dbConn, users, opts.adminUsername)
		if err != nil {
			return err
		}
		log.Info("seed: admin created", "user_id", admin.ID, "username", admin.Username)
	}

	for i := 0; i < opts.groups; i++ {
		if err := seedGroup(ctx, opts, users, groups, chores, log); err != nil {
			return err
		}
	}

	log.Info("seed: done")
	return nil
}

func seedGroup(ctx context.Context, opts options, users *userdomain.Service, groups *groupdomain.Service, chores *choresdomain.Service, log logger.Logger) error {
	members := make([]userdomain.Identity, 0, opts.usersPerGroup)
	for i := 0; i < opts.usersPerGroup; i++ {
		user, err := createFakeUser(ctx, users)
		if err != nil {
			return err
		}
		members = append(members, user.Identity())
	}

	owner := members[0]
	group, err := groups.CreateGroup(ctx, owner, fakeGroupName(), gofakeit.LetterN(6))
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	owner.GroupID = &group.ID
	members[0] = owner

	for i := 1; i < len(members); i++ {
		if _, err := groups.JoinGroup(ctx, members[i], group.Name, group.InviteCode); err != nil {
			return fmt.Errorf("join group: %w", err)
		}
		members[i].GroupID = &group.ID
	}

	completed := 0
	for i := 0; i < opts.choresPerGroup; i++ {
		actor := members[gofakeit.Number(0, len(members)-1)]
		input := choresdomain.AssignBalancedInput{
			GroupID:       group.ID,
			Name:          fakeChoreName(),
			Description:   gofakeit.Sentence(8),
			DueDate:       gofakeit.DateRange(time.Now().AddDate(0, 0, -7), time.Now().AddDate(0, 0, 14)).UTC(),
			AssigneeCount: gofakeit.Number(1, len(members)),
		}
		if gofakeit.Bool() {
			pattern := gofakeit.RandomString([]string{"daily", "weekly", "monthly"})
			input.Recurrence = &pattern
		}

		created, err := chores.AssignBalanced(ctx, actor, input)
		if err != nil {
			return fmt.Errorf("assign chore: %w", err)
		}

		if gofakeit.Float64Range(0, 1) >= opts.completeRatio {
			continue
		}
		if err := completeChore(ctx, chores, members, actor, created.Chore.ID); err != nil {
			return err
		}
		completed++
	}

	log.Info("seed: group created",
		"group_id", group.ID,
		"name", group.Name,
		"invite_code", group.InviteCode,
		"members", len(members),
		"chores", opts.choresPerGroup,
		"completed", completed,
	)
	return nil
}

// completeChore has every assignee complete their own assignment, which
// closes the chore once the last one is done.
func completeChore(ctx context.Context, chores *choresdomain.Service, members []userdomain.Identity, actor userdomain.Identity, choreID int64) error {
	assignments, err := chores.ListChoreAssignments(ctx, actor, choreID)
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}

	byID := make(map[int64]userdomain.Identity, len(members))
	for _, member := range members {
		byID[member.ID] = member
	}

	for _, assignment := range assignments {
		assignee, ok := byID[assignment.UserID]
		if !ok {
			return fmt.Errorf("complete assignment %d: assignee %d is not a seeded member", assignment.ID, assignment.UserID)
		}
		if _, err := chores.CompleteAssignment(ctx, assignee, assignment.ID); err != nil {
			return fmt.Errorf("complete assignment %d: %w", assignment.ID, err)
		}
	}
	return nil
}

func createFakeUser(ctx context.Context, users *userdomain.Service) (*userdomain.User, error) {
	for attempt := 0; attempt < 5; attempt++ {
		username := strings.ToLower(gofakeit.Username())
		user, err := users.CreateUser(ctx, username, gofakeit.Email())
		if errors.Is(err, userdomain.ErrUsernameTaken) || errors.Is(err, userdomain.ErrEmailTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return user, nil
	}
	return nil, errors.New("create user: could not find a free username")
}

// createAdmin is the only way to get is_admin set.
func createAdmin(ctx context.Context, dbConn *gorm.DB, users *userdomain.Service, username string) (*userdomain.User, error) {
	user, err := users.CreateUser(ctx, username, username+"@"+gofakeit.DomainName())
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	err = dbConn.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", user.ID).
		Update("is_admin", true).Error
	if err != nil {
		return nil, fmt.Errorf("promote admin: %w", err)
	}

	user.IsAdmin = true
	return user, nil
}

func fakeGroupName() string {
	name := gofakeit.Company() + " " + gofakeit.LetterN(4)
	if len(name) > 50 {
		name = name[len(name)-50:]
	}
	return name
}

func fakeChoreName() string {
	name := gofakeit.HipsterWord() + " " + gofakeit.RandomString([]string{"dishes", "laundry", "trash", "vacuum", "groceries", "bathroom", "plants"})
	if len(name) > 50 {
		name = name[:50]
	}
	return name
}
