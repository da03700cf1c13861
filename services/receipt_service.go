package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/models"
)

// ReceiptArchiver stores a settlement receipt for a completed order
type ReceiptArchiver interface {
	ArchiveReceipt(order *models.Order) error
}

// Receipt is the archived settlement record
type Receipt struct {
	OrderNumber string                 `json:"order_number"`
	TableName   string                 `json:"table_name,omitempty"`
	OrderItems  []models.OrderLineItem `json:"order_items"`
	ComboItems  []models.ComboLineItem `json:"combo_items"`
	Subtotal    float64                `json:"subtotal"`
	TaxTotal    float64                `json:"tax_total"`
	OrderTotal  float64                `json:"order_total"`
	SettledAt   time.Time              `json:"settled_at"`
}

// S3ReceiptService archives receipts as JSON objects in an S3 bucket
type S3ReceiptService struct {
	client *s3.Client
	bucket string
}

var receiptArchiverInstance ReceiptArchiver

// InitReceiptService initializes the S3-backed receipt archive. Returns
// nil without error when no bucket is configured; settlement then skips
// archiving.
func InitReceiptService() (ReceiptArchiver, error) {
	cfg := appConfig.GetConfig()
	if cfg == nil || cfg.AWSS3Bucket == "" {
		return nil, nil
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	receiptArchiverInstance = &S3ReceiptService{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.AWSS3Bucket,
	}

	return receiptArchiverInstance, nil
}

// GetReceiptArchiver returns the initialized receipt archiver instance
// (nil when archiving is disabled)
func GetReceiptArchiver() ReceiptArchiver {
	return receiptArchiverInstance
}

// SetReceiptArchiver sets the receipt archiver instance (primarily for testing)
func SetReceiptArchiver(service ReceiptArchiver) {
	receiptArchiverInstance = service
}

// ArchiveReceipt uploads the order's settlement receipt to S3 under
// receipts/{orderNumber}.json
func (s *S3ReceiptService) ArchiveReceipt(order *models.Order) error {
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
	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload receipt to S3: %w", err)
	}

	return nil
}
