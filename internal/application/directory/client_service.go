package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/facturio/backend/internal/domain/directory"
	"github.com/facturio/backend/internal/domain/shared"
)

// ClientService handles client record operations
type ClientService struct {
	clientRepo directory.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo directory.ClientRepository, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create registers a client record for a user account
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	// One client record per user account
	existing, err := s.clientRepo.FindByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client record already exists for this user")
	}

	client, err := directory.NewClient(req.UserID, req.Name, req.Email, req.Address, req.TaxID)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("client record created",
		zap.String("clientId", client.ID.String()),
		zap.String("userId", req.UserID.String()))

	return ToClientResponse(client), nil
}

// GetByID returns a client record by its record ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// GetByUserID maps a client user account to its client record
func (s *ClientService) GetByUserID(ctx context.Context, userID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CLIENT_NOT_MAPPED", "No client record exists for this user")
		}
		return nil, err
	}
	return ToClientResponse(client), nil
}

// List returns all client records
func (s *ClientService) List(ctx context.Context, filter shared.Filter) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]ClientResponse, len(clients))
	for i := range clients {
		result[i] = *ToClientResponse(&clients[i])
	}
	return result, nil
}

// Update replaces a client record's contact information
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := client.UpdateDetails(req.Name, req.Email, req.Address, req.TaxID); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	return ToClientResponse(client), nil
}

// SetProfilePicture stores the uploaded picture filename on the record
func (s *ClientService) SetProfilePicture(ctx context.Context, id uuid.UUID, filename string) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.SetProfilePicture(filename)

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	return ToClientResponse(client), nil
}

// Delete removes a client record
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}
