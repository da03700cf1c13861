package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bellavista-pos/bellavista-foh-api/models"
)

// MockReceiptService is an in-memory ReceiptArchiver for testing
type MockReceiptService struct {
	receipts map[string][]byte // map of S3 key to receipt JSON
	mu       sync.RWMutex
}

// NewMockReceiptService creates a new mock receipt archiver
func NewMockReceiptService() *MockReceiptService {
	return &MockReceiptService{
		receipts: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global receipt archiver instance
func (m *MockReceiptService) SetAsMockForTesting() {
	SetReceiptArchiver(m)
}

// ArchiveReceipt stores the receipt JSON in memory
func (m *MockReceiptService) ArchiveReceipt(order *models.Order) error {
	receipt := Receipt{
		OrderNumber: order.OrderNumber,
		TableName:   order.TableDisplayName,
		OrderItems:  order.OrderItems,
		ComboItems:  order.ComboItems,
		Subtotal:    order.Subtotal,
		TaxTotal:    order.TaxTotal,
		OrderTotal:  order.OrderTotal,
		SettledAt:   time.Now(),
	}

	body, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}

	key := fmt.Sprintf("receipts/%s.json", order.OrderNumber)
	m.mu.Lock()
	m.receipts[key] = body
	m.mu.Unlock()

	return nil
}

// GetReceipt returns the stored receipt JSON for an S3 key
func (m *MockReceiptService) GetReceipt(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, exists := m.receipts[key]
	return body, exists
}

// Count returns the number of archived receipts
func (m *MockReceiptService) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.receipts)
}
