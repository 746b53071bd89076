package handler

import (
	admindomain "chores-app-go/internal/domain/admin"
	choresdomain "chores-app-go/internal/domain/chores"
	groupdomain "chores-app-go/internal/domain/group"
	userdomain "chores-app-go/internal/domain/user"
	"chores-app-go/pkg/logger"
)

type Handlers struct {
	Users         *userdomain.Service
	Groups        *groupdomain.Service
	Chores        *choresdomain.Service
	Admin         *admindomain.Service
	reminderHours int
	log           logger.Logger
}

func New(users *userdomain.Service, groups *groupdomain.Service, chores *choresdomain.Service, admin *admindomain.Service, reminderHours int, log logger.Logger) *Handlers {
	return &Handlers{
		Users:         users,
		Groups:        groups,
		Chores:        chores,
		Admin:         admin,
		reminderHours: reminderHours,
		log:           log,
	}
}
