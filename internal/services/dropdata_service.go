package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/infrastructure/kv"
)

const (
	dropDataKeyPrefix = "g3ms_drop_creation_data:"
	dropFlowKeyPrefix = "g3ms_drop_creation_flow:"
)

// DropDataServiceImpl implements domain.DropDataStore on a tiered
// key-value store. Pre-fill data captured on the marketing funnel must
// survive the whole signup dance, so it lives server-side keyed by the
// browser session; losing it is annoying but never fatal, so storage
// failures are logged and swallowed.
type DropDataServiceImpl struct {
	store *kv.Tiered
}

// NewDropDataService creates the scratch-data service.
func NewDropDataService(store *kv.Tiered) *DropDataServiceImpl {
	return &DropDataServiceImpl{store: store}
}

// Set implements domain.DropDataStore. A nil or empty payload clears the
// stored data.
func (s *DropDataServiceImpl) Set(ctx context.Context, sessionID string, data *domain.DropFormData) error {
	if data.Empty() {
		s.store.Delete(ctx, dropDataKeyPrefix+sessionID)
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("DROP_DATA_ENCODE_FAILED: session_id=%s error=%v", sessionID, err)
		return nil
	}
	if err := s.store.Set(ctx, dropDataKeyPrefix+sessionID, payload); err != nil {
		log.Printf("DROP_DATA_WRITE_FAILED: session_id=%s error=%v", sessionID, err)
	}
	return nil
}

// Get implements domain.DropDataStore.
func (s *DropDataServiceImpl) Get(ctx context.Context, sessionID string) (*domain.DropFormData, error) {
	payload, err := s.store.Get(ctx, dropDataKeyPrefix+sessionID)
	if err == kv.ErrNotFound {
		return nil, domain.ErrScratchNotFound
	}
	if err != nil {
		log.Printf("DROP_DATA_READ_FAILED: session_id=%s error=%v", sessionID, err)
		return nil, domain.ErrScratchNotFound
	}

	var data domain.DropFormData
	if err := json.Unmarshal(payload, &data); err != nil {
		log.Printf("DROP_DATA_DECODE_FAILED: session_id=%s error=%v", sessionID, err)
		return nil, domain.ErrScratchNotFound
	}
	return &data, nil
}

// Clear implements domain.DropDataStore: removes both the data and the
// flow flag.
func (s *DropDataServiceImpl) Clear(ctx context.Context, sessionID string) error {
	s.store.Delete(ctx, dropDataKeyPrefix+sessionID)
	s.store.Delete(ctx, dropFlowKeyPrefix+sessionID)
	return nil
}

// MarkFlow implements domain.DropDataStore: remembers that the user is in
// the drop-creation funnel.
func (s *DropDataServiceImpl) MarkFlow(ctx context.Context, sessionID string) error {
	if err := s.store.Set(ctx, dropFlowKeyPrefix+sessionID, []byte("1")); err != nil {
		log.Printf("DROP_FLOW_WRITE_FAILED: session_id=%s error=%v", sessionID, err)
	}
	return nil
}

// InFlow implements domain.DropDataStore.
func (s *DropDataServiceImpl) InFlow(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.store.Get(ctx, dropFlowKeyPrefix+sessionID)
	if err != nil {
		return false, nil
	}
	return true, nil
}
