package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnap struct {
	last *snap.Request
	err  *midtrans.Error
}

func (f *fakeSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &snap.Response{Token: "snap-token", RedirectURL: "https://pay.example/snap-token"}, nil
}

func TestMajorUnitsRoundsUp(t *testing.T) {
	assert.EqualValues(t, 10, MajorUnits(1000))
	assert.EqualValues(t, 11, MajorUnits(1001))
	assert.EqualValues(t, 1, MajorUnits(1))
	assert.EqualValues(t, 0, MajorUnits(0))
}

func TestCreateIntentThroughMidtrans(t *testing.T) {
	db := openDB(t)
	user := createUser(t, db, "payer@vendoz.test")
	client := &fakeSnap{}
	gateway := &MidtransGateway{client: client, finishURL: "http://shop.test/checkout/finish"}

	svc := NewPaymentService(gateway, repositories.NewUserRepository(db))
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }

	intent, err := svc.CreateIntent(context.Background(), user.ID, PaymentIntentInput{Amount: 2599, OrderID: "order-9"})
	require.NoError(t, err)
	assert.Equal(t, "snap-token", intent.ClientSecret)
	assert.Equal(t, "https://pay.example/snap-token", intent.RedirectURL)

	require.NotNil(t, client.last)
	assert.EqualValues(t, 26, client.last.TransactionDetails.GrossAmt)
	assert.Equal(t, "order-9-1700000000", client.last.TransactionDetails.OrderID)
	require.NotNil(t, client.last.CustomerDetail)
	assert.Equal(t, "payer@vendoz.test", client.last.CustomerDetail.Email)
	assert.True(t, strings.HasSuffix(client.last.Callbacks.Finish, "order_id=order-9-1700000000"))
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	svc := NewPaymentService(&MidtransGateway{client: &fakeSnap{}}, nil)
	_, err := svc.CreateIntent(context.Background(), "", PaymentIntentInput{Amount: 0})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCreateIntentSurfacesGatewayError(t *testing.T) {
	client := &fakeSnap{err: &midtrans.Error{Message: "unauthorized", StatusCode: 401}}
	svc := NewPaymentService(&MidtransGateway{client: client}, nil)

	_, err := svc.CreateIntent(context.Background(), "", PaymentIntentInput{Amount: 500})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(client.last.TransactionDetails.OrderID, "VZ-"))
}
