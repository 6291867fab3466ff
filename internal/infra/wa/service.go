package wa

import (
	"context"
	"fmt"
	"os"

	"github.com/mdp/qrterminal"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"
)

// MessageHandler receives every incoming message event.
type MessageHandler func(ctx context.Context, client *whatsmeow.Client, evt *events.Message)

// Service owns the whatsmeow client and its device store. The device session
// shares the bot's sqlite file; WAL mode and a busy timeout keep the two
// connections from tripping over each other.
type Service struct {
	client  *whatsmeow.Client
	dbPath  string
	log     walog.Logger
	handler MessageHandler
}

func NewService(dbPath string, logger walog.Logger) *Service {
	return &Service{dbPath: dbPath, log: logger}
}

func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.handler = handler
}

// Initialize opens the device store and builds the client without connecting.
func (s *Service) Initialize(ctx context.Context) error {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.dbPath)
	container, err := sqlstore.New(ctx, "sqlite", dsn, s.log)
	if err != nil {
		return fmt.Errorf("open device store: %w", err)
	}

	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("list devices: %w", err)
	}

	var device *store.Device
	if len(devices) > 0 {
		device = devices[0]
	} else {
		device = container.NewDevice()
	}

	s.client = whatsmeow.NewClient(device, s.log)
	s.client.AddEventHandler(func(evt interface{}) {
		if msg, ok := evt.(*events.Message); ok && s.handler != nil {
			go s.handler(context.Background(), s.client, msg)
		}
	})
	return nil
}

func (s *Service) Connect() error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

func (s *Service) GetClient() *whatsmeow.Client {
	return s.client
}

func (s *Service) IsLoggedIn() bool {
	return s.client.Store.ID != nil
}

// Pair requests a pairing code for the given phone number. The client must
// already be connected.
func (s *Service) Pair(phone string) (string, error) {
	if s.IsLoggedIn() {
		return "", fmt.Errorf("already logged in")
	}
	if !s.client.IsConnected() {
		return "", fmt.Errorf("client not connected")
	}
	return s.client.PairPhone(context.Background(), phone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
}

// PrintQR connects and renders login QR codes to the terminal until the user
// scans one. The QR channel has to be requested before Connect.
func (s *Service) PrintQR() {
	if s.client.Store.ID != nil {
		return
	}
	qrChan, _ := s.client.GetQRChannel(context.Background())
	if err := s.client.Connect(); err != nil {
		fmt.Println("Failed to connect for QR:", err)
		return
	}
	for evt := range qrChan {
		if evt.Event == "code" {
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		} else {
			fmt.Println("Login event:", evt.Event)
		}
	}
}
