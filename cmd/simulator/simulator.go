package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatorConfig holds the simulator configuration
type SimulatorConfig struct {
	ServerURL  string
	Devices    int
	Days       int
	Heavy4G    bool
	Brand      string
	Model      string
	QueryChart bool
	Timeout    time.Duration
}

var brands = []string{"Samsung", "LG", "Sony", "HTC", "Motorola", "Wiko"}

var models = map[string][]string{
	"Samsung":  {"GT-I9300", "GT-I9505", "SM-G900F"},
	"LG":       {"Nexus 4", "Nexus 5", "G2"},
	"Sony":     {"Xperia Z", "Xperia SP"},
	"HTC":      {"One", "Desire 500"},
	"Motorola": {"Moto G", "Moto X"},
	"Wiko":     {"Cink Five", "Darkmoon"},
}

// simDevice is one synthetic reporting handset.
type simDevice struct {
	Identifier string
	Brand      string
	Model      string
}

// Simulator registers synthetic devices and uploads randomized daily
// reports against a running API instance.
type Simulator struct {
	config SimulatorConfig
	client *http.Client
	log    *zap.Logger
}

func NewSimulator(config SimulatorConfig, log *zap.Logger) *Simulator {
	return &Simulator{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		log:    log,
	}
}

// Run drives the whole scenario: registration, uploads, chart query.
func (s *Simulator) Run() error {
	s.log.Info("Starting traffic simulation",
		zap.String("server", s.config.ServerURL),
		zap.Int("devices", s.config.Devices),
		zap.Int("days", s.config.Days),
	)

	if err := s.ping(); err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}

	devices := make([]simDevice, 0, s.config.Devices)
	for i := 0; i < s.config.Devices; i++ {
		device := s.newDevice()
		if err := s.register(device); err != nil {
			return fmt.Errorf("failed to register %s: %w", device.Identifier, err)
		}
		devices = append(devices, device)
	}
	s.log.Info("Devices registered", zap.Int("count", len(devices)))

	uploaded := 0
	today := time.Now()
	for _, device := range devices {
		for offset := s.config.Days - 1; offset >= 0; offset-- {
			date := today.AddDate(0, 0, -offset).Format("20060102")
			if err := s.upload(device, date); err != nil {
				return fmt.Errorf("failed to upload %s/%s: %w", device.Identifier, date, err)
			}
			uploaded++
		}
	}
	s.log.Info("Reports uploaded", zap.Int("count", uploaded))

	if s.config.QueryChart {
		if err := s.queryChart(); err != nil {
			return fmt.Errorf("chart query failed: %w", err)
		}
	}

	return nil
}

func (s *Simulator) newDevice() simDevice {
	brand := s.config.Brand
	if brand == "" {
		brand = brands[rand.Intn(len(brands))]
	}
	model := s.config.Model
	if model == "" {
		candidates, ok := models[brand]
		if !ok {
			candidates = []string{"Generic"}
		}
		model = candidates[rand.Intn(len(candidates))]
	}
	return simDevice{
		Identifier: uuid.NewString(),
		Brand:      brand,
		Model:      model,
	}
}

func (s *Simulator) ping() error {
	resp, err := s.client.Get(s.config.ServerURL + "/")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (s *Simulator) register(device simDevice) error {
	body := map[string]string{
		"brand": device.Brand,
		"model": device.Model,
	}
	resp, err := s.do(http.MethodPut, "/device/"+device.Identifier, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// upload sends one randomized report. The breakdown is generated
// consistent: 3G + 4G + femtocell never exceeds the Free Mobile total.
func (s *Simulator) upload(device simDevice, date string) error {
	const dayMs = 24 * 60 * 60 * 1000

	freeMobile := rand.Int63n(dayMs)
	orange := rand.Int63n(dayMs - freeMobile + 1)

	fourG := rand.Int63n(freeMobile + 1)
	if s.config.Heavy4G {
		// Keep at least 80% of the Free Mobile time on 4G so cohorts
		// cross the classification threshold quickly.
		fourG = freeMobile * (80 + rand.Int63n(21)) / 100
	}
	rest := freeMobile - fourG
	threeG := rand.Int63n(rest + 1)
	femtocell := rand.Int63n(rest - threeG + 1)

	body := map[string]int64{
		"timeOnOrange":              orange,
		"timeOnFreeMobile":          freeMobile,
		"timeOnFreeMobile3g":        threeG,
		"timeOnFreeMobile4g":        fourG,
		"timeOnFreeMobileFemtocell": femtocell,
	}
	resp, err := s.do(http.MethodPost, "/device/"+device.Identifier+"/daily/"+date, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (s *Simulator) queryChart() error {
	resp, err := s.client.Get(s.config.ServerURL + "/chart/network-usage")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.log.Info("Usage chart", zap.ByteString("aggregate", payload))
	return nil
}

func (s *Simulator) do(method, path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, s.config.ServerURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.client.Do(req)
}
