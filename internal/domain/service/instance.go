package service

import (
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
)

type Instance struct {
	Importer *importerService
	Message  *messageService
	Poster   *posterService
}

func NewInstance(dm contract.DataManager, transport contract.MessageTransport, loc *time.Location) *Instance {
	messageService := newMessage(dm)

	return &Instance{
		Importer: newImporter(dm),
		Message:  messageService,
		Poster:   newPoster(dm, transport, messageService, loc),
	}
}
