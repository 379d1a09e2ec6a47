package ports

import "boardgame-catalog-api/internal/domain"

// ChangePublisher receives resource mutations after they are stored
type ChangePublisher interface {
	Publish(event *domain.ChangeEvent)
}

// TransitionRecorder records login state transitions
type TransitionRecorder interface {
	RecordTransition(state domain.AuthState, outcome string)
}
