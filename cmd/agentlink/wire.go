package main

import (
	"time"

	"github.com/PabloGalante/agentlink/internal/adapters/idgen"
	memstore "github.com/PabloGalante/agentlink/internal/adapters/storage/memory"
	"github.com/PabloGalante/agentlink/internal/app/agentflow"
	"github.com/PabloGalante/agentlink/internal/app/conversation"
	"github.com/PabloGalante/agentlink/internal/app/workspace"
	"github.com/PabloGalante/agentlink/internal/config"
)

// buildServices wires the in-memory stores, the dispatcher and the services.
func buildServices(cfg *config.Config, latency time.Duration) (*conversation.Service, *workspace.Service, error) {
	ids, err := idgen.New(cfg.IDSource)
	if err != nil {
		return nil, nil, err
	}

	sessionStore := memstore.NewSessionStore()
	messageStore := memstore.NewMessageStore()

	convSvc := conversation.NewService(
		agentflow.NewDispatcher(ids),
		sessionStore,
		messageStore,
		ids,
		conversation.WithLatency(latency),
		conversation.WithWelcome(cfg.WelcomeMessage),
	)
	return convSvc, workspace.NewService(sessionStore), nil
}
