package gateway

import (
	"errors"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"
)

// TransactionRequest describes a Snap checkout for one payment code.
type TransactionRequest struct {
	OrderID    string
	Amount     int64
	PayerName  string
	PayerEmail string
}

// Transaction is what the client needs to open the Snap popup.
type Transaction struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// PaymentGateway relays transactions to the payment provider.
type PaymentGateway interface {
	CreateTransaction(req TransactionRequest) (*Transaction, error)
	Status(orderID string) (*coreapi.TransactionStatusResponse, error)
}

// Metode pembayaran yang ditampilkan di Snap
var enabledPayments = []snap.SnapPaymentType{
	"credit_card", "cimb_clicks", "bca_klikbca", "bca_klikpay", "bri_epay",
	"echannel", "permata_va", "bca_va", "bni_va", "bri_va", "cimb_va",
	"other_va", "gopay", "indomaret", "danamon_online", "akulaku",
	"shopeepay", "kredivo", "uob_ezpay", "other_qris",
}

type Midtrans struct {
	snapClient snap.Client
	coreClient coreapi.Client
	log        *zap.Logger
}

func NewMidtrans(serverKey string, production bool, log *zap.Logger) *Midtrans {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	m := &Midtrans{log: log.With(zap.String("gateway", "midtrans"))}
	m.snapClient.New(serverKey, env)
	m.coreClient.New(serverKey, env)
	return m
}

func (m *Midtrans) CreateTransaction(req TransactionRequest) (*Transaction, error) {
	if req.OrderID == "" {
		return nil, errors.New("order id is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		EnabledPayments: enabledPayments,
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.PayerName,
			Email: req.PayerEmail,
		},
	}

	resp, mErr := m.snapClient.CreateTransaction(snapReq)
	if mErr != nil {
		m.log.Error("Failed to create snap transaction",
			zap.String("order_id", req.OrderID),
			zap.String("error", mErr.Error()),
		)
		return nil, fmt.Errorf("midtrans create transaction %s: %s", req.OrderID, mErr.Error())
	}

	m.log.Info("Snap transaction created", zap.String("order_id", req.OrderID))
	return &Transaction{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func (m *Midtrans) Status(orderID string) (*coreapi.TransactionStatusResponse, error) {
	resp, mErr := m.coreClient.CheckTransaction(orderID)
	if mErr != nil {
		m.log.Warn("Failed to check transaction status",
			zap.String("order_id", orderID),
			zap.String("error", mErr.Error()),
		)
		return nil, fmt.Errorf("midtrans status %s: %s", orderID, mErr.Error())
	}
	return resp, nil
}

var _ PaymentGateway = (*Midtrans)(nil)
