package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

// masterKey is the activation key handed to customers.
const masterKey = "VENDIX-2025-PRO"

// ErrInvalidLicenseKey rejects activation with a key that does not
// match the master key.
var ErrInvalidLicenseKey = errors.New("invalid license key")

// LicenseStatus is the read-side view of the activation record.
type LicenseStatus struct {
	Licensed bool           `json:"licensed"`
	License  *model.License `json:"license,omitempty"`
}

type LicenseService interface {
	Activate(key string) (*model.License, error)
	Status() (*LicenseStatus, error)
	IsLicensed() bool
}

type licenseService struct {
	store storage.Store
	log   *zap.Logger
}

func NewLicenseService(store storage.Store, log *zap.Logger) LicenseService {
	return &licenseService{store: store, log: log}
}

// Activate validates the key and persists the single activation row,
// minting a device id on first activation.
func (s *licenseService) Activate(key string) (*model.License, error) {
	key = strings.TrimSpace(key)
	if key != masterKey {
		return nil, ErrInvalidLicenseKey
	}

	lic := &model.License{
		Key:         key,
		DeviceID:    uuid.NewString(),
		ActivatedAt: time.Now(),
	}
	if existing, err := s.store.GetLicense(); err == nil && existing.DeviceID != "" {
		lic.DeviceID = existing.DeviceID
	}

	if err := s.store.SaveLicense(lic); err != nil {
		return nil, err
	}
	s.log.Info("license activated", zap.String("device_id", lic.DeviceID))
	return lic, nil
}

func (s *licenseService) Status() (*LicenseStatus, error) {
	lic, err := s.store.GetLicense()
	if errors.Is(err, storage.ErrNotFound) {
		return &LicenseStatus{Licensed: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &LicenseStatus{Licensed: s.valid(lic), License: lic}, nil
}

func (s *licenseService) IsLicensed() bool {
	lic, err := s.store.GetLicense()
	if err != nil {
		return false
	}
	return s.valid(lic)
}

func (s *licenseService) valid(lic *model.License) bool {
	if lic.Key != masterKey {
		return false
	}
	if lic.ExpiresAt != nil && time.Now().After(*lic.ExpiresAt) {
		return false
	}
	return true
}
