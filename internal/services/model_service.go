package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"chronicle/internal/assets"
	"chronicle/internal/models"
	"chronicle/internal/repositories"
)

// ModelConfigService exposes the embedded provider/model catalog together
// with persisted per-model enablement.
type ModelConfigService interface {
	Startup() error
	ListModelGroups() ([]models.LLMModelGroup, error)
	GetModel(modelKey string) (*models.LLMModel, error)
	DefaultModel(providerID string) (*models.LLMModel, error)
	Resolve(providerID, keyOrAPIName string) (*models.LLMModel, error)
	SetModelEnabled(modelKey string, enabled bool) (*models.LLMModel, error)
}

type modelConfigService struct {
	repo repositories.ModelSettingRepository

	mu            sync.RWMutex
	providerOrder []string
	providerNames map[string]string
	models        map[string]*catalogModel
	settings      map[string]bool
}

type catalogModel struct {
	Key         string
	ProviderID  string
	Provider    string
	DisplayName string
	APIName     string
	Default     bool
}

type rawModelFile struct {
	Providers []rawProvider `json:"providers"`
}

type rawProvider struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Models      []rawModel `json:"models"`
}

type rawModel struct {
	DisplayName string `json:"displayName"`
	APIName     string `json:"apiName"`
	Default     bool   `json:"default,omitempty"`
}

func NewModelConfigService(repo repositories.ModelSettingRepository) ModelConfigService {
	return &modelConfigService{
		repo:          repo,
		models:        make(map[string]*catalogModel),
		settings:      make(map[string]bool),
		providerNames: make(map[string]string),
	}
}

// Startup parses the embedded catalog and seeds enablement settings for
// models seen for the first time.
func (s *modelConfigService) Startup() error {
	var parsed rawModelFile
	if err := json.Unmarshal(assets.ModelsData, &parsed); err != nil {
		return fmt.Errorf("parse models asset: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.providerOrder = make([]string, 0, len(parsed.Providers))
	for _, provider := range parsed.Providers {
		providerID := strings.TrimSpace(provider.ID)
		if providerID == "" {
			continue
		}
		providerName := strings.TrimSpace(provider.DisplayName)
		s.providerNames[providerID] = providerName
		s.providerOrder = append(s.providerOrder, providerID)
		for _, mdl := range provider.Models {
			key := modelKey(providerID, mdl.APIName)
			s.models[key] = &catalogModel{
				Key:         key,
				ProviderID:  providerID,
				Provider:    providerName,
				DisplayName: strings.TrimSpace(mdl.DisplayName),
				APIName:     strings.TrimSpace(mdl.APIName),
				Default:     mdl.Default,
			}
		}
	}

	existing, err := s.repo.List()
	if err != nil {
		return fmt.Errorf("load model settings: %w", err)
	}
	for _, setting := range existing {
		s.settings[setting.ModelKey] = setting.Enabled
	}
	for key, def := range s.models {
		if _, ok := s.settings[key]; !ok {
			if _, err := s.repo.Upsert(key, def.ProviderID, true); err != nil {
				return fmt.Errorf("seed model setting for %s: %w", key, err)
			}
			s.settings[key] = true
		}
	}
	return nil
}

func (s *modelConfigService) ListModelGroups() ([]models.LLMModelGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.LLMModelGroup, 0, len(s.providerOrder))
	for _, providerID := range s.providerOrder {
		group := models.LLMModelGroup{
			ProviderID:   providerID,
			ProviderName: s.providerNames[providerID],
		}
		for _, def := range s.models {
			if def.ProviderID != providerID {
				continue
			}
			group.Models = append(group.Models, s.toModelLocked(def))
		}
		sort.Slice(group.Models, func(i, j int) bool {
			return group.Models[i].DisplayName < group.Models[j].DisplayName
		})
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *modelConfigService) GetModel(key string) (*models.LLMModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.models[strings.TrimSpace(key)]
	if !ok {
		return nil, nil
	}
	m := s.toModelLocked(def)
	return &m, nil
}

// DefaultModel returns the catalog default for a provider, or its first
// enabled model when none is flagged.
func (s *modelConfigService) DefaultModel(providerID string) (*models.LLMModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fallback *catalogModel
	for _, def := range s.models {
		if def.ProviderID != providerID {
			continue
		}
		if def.Default && s.enabledLocked(def.Key) {
			m := s.toModelLocked(def)
			return &m, nil
		}
		if fallback == nil && s.enabledLocked(def.Key) {
			fallback = def
		}
	}
	if fallback != nil {
		m := s.toModelLocked(fallback)
		return &m, nil
	}
	return nil, fmt.Errorf("no enabled model for provider %s", providerID)
}

// Resolve finds a model by catalog key or API name within a provider. An
// empty keyOrAPIName selects the provider default.
func (s *modelConfigService) Resolve(providerID, keyOrAPIName string) (*models.LLMModel, error) {
	keyOrAPIName = strings.TrimSpace(keyOrAPIName)
	if keyOrAPIName == "" {
		return s.DefaultModel(providerID)
	}

	if m, err := s.GetModel(keyOrAPIName); err == nil && m != nil {
		if m.ProviderID != providerID {
			return nil, fmt.Errorf("model %s belongs to provider %s, not %s", keyOrAPIName, m.ProviderID, providerID)
		}
		return m, nil
	}
	if m, err := s.GetModel(modelKey(providerID, keyOrAPIName)); err == nil && m != nil {
		return m, nil
	}

	// Unknown models pass through: providers ship new models faster than
	// this catalog updates.
	return &models.LLMModel{
		Key:          modelKey(providerID, keyOrAPIName),
		DisplayName:  keyOrAPIName,
		APIName:      keyOrAPIName,
		ProviderID:   providerID,
		ProviderName: s.providerNames[providerID],
		Enabled:      true,
	}, nil
}

func (s *modelConfigService) SetModelEnabled(key string, enabled bool) (*models.LLMModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, ok := s.models[strings.TrimSpace(key)]
	if !ok {
		return nil, fmt.Errorf("model %s not found", key)
	}
	if _, err := s.repo.Upsert(def.Key, def.ProviderID, enabled); err != nil {
		return nil, err
	}
	s.settings[def.Key] = enabled
	m := s.toModelLocked(def)
	return &m, nil
}

func (s *modelConfigService) enabledLocked(key string) bool {
	enabled, ok := s.settings[key]
	return !ok || enabled
}

func (s *modelConfigService) toModelLocked(def *catalogModel) models.LLMModel {
	return models.LLMModel{
		Key:          def.Key,
		DisplayName:  def.DisplayName,
		APIName:      def.APIName,
		ProviderID:   def.ProviderID,
		ProviderName: def.Provider,
		Default:      def.Default,
		Enabled:      s.enabledLocked(def.Key),
	}
}

func modelKey(providerID, apiName string) string {
	return providerID + "/" + strings.TrimSpace(apiName)
}
