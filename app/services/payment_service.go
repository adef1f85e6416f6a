package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"
)

// PaymentIntent is what the storefront needs to finish a payment with the gateway.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
	RedirectURL  string `json:"redirectUrl"`
}

type PaymentRequest struct {
	OrderID       string
	Amount        int64
	CustomerName  string
	CustomerEmail string
}

type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req PaymentRequest) (*PaymentIntent, error)
}

type snapTransactionCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// MidtransGateway creates Snap transactions. The snap token doubles as the client secret.
type MidtransGateway struct {
	client    snapTransactionCreator
	finishURL string
}

func NewMidtransGateway(client *snap.Client, appURL string) *MidtransGateway {
	finish := ""
	if appURL != "" {
		finish = strings.TrimRight(appURL, "/") + "/checkout/finish"
	}
	return &MidtransGateway{client: client, finishURL: finish}
}

func (g *MidtransGateway) CreatePaymentIntent(ctx context.Context, req PaymentRequest) (*PaymentIntent, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}
	if req.CustomerEmail != "" {
		snapReq.CustomerDetail = &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
		}
	}
	if g.finishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: g.finishURL + "?order_id=" + req.OrderID}
	}

	snapResp, errMidtrans := g.client.CreateTransaction(snapReq)
	if errMidtrans != nil {
		return nil, fmt.Errorf("failed to initiate Midtrans transaction: %w", errMidtrans)
	}
	if snapResp == nil || snapResp.Token == "" {
		return nil, errors.New("midtrans transaction initiated but returned invalid response (missing token)")
	}

	return &PaymentIntent{ClientSecret: snapResp.Token, RedirectURL: snapResp.RedirectURL}, nil
}

type PaymentIntentInput struct {
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	OrderID string `json:"orderId"`
}

type PaymentService struct {
	gateway  PaymentGateway
	userRepo repositories.UserRepositoryImpl
	now      func() time.Time
}

func NewPaymentService(gateway PaymentGateway, userRepo repositories.UserRepositoryImpl) *PaymentService {
	return &PaymentService{gateway: gateway, userRepo: userRepo, now: time.Now}
}

// MajorUnits converts an amount in minor units (cents) to whole units, rounding up.
func MajorUnits(minor int64) int64 {
	if minor <= 0 {
		return 0
	}
	return (minor + 99) / 100
}

func (s *PaymentService) CreateIntent(ctx context.Context, userID string, input PaymentIntentInput) (*PaymentIntent, error) {
	if input.Amount <= 0 {
		return nil, invalid("amount must be a positive integer in minor units")
	}

	req := PaymentRequest{Amount: MajorUnits(input.Amount)}

	// gateway order ids must be unique per attempt
	if input.OrderID != "" {
		req.OrderID = fmt.Sprintf("%s-%d", input.OrderID, s.now().Unix())
	} else {
		req.OrderID = "VZ-" + uuid.New().String()
	}

	if userID != "" {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			req.CustomerName = user.FullName
			req.CustomerEmail = user.Email
		}
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, req)
	if err != nil {
		zap.S().Errorf("Payment intent for %s (%d) failed: %v", req.OrderID, req.Amount, err)
		return nil, err
	}
	zap.S().Infof("Payment intent created for %s (%d)", req.OrderID, req.Amount)
	return intent, nil
}
