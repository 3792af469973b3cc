package service

import (
	"context"
	"encoding/json"
	"log"

	"lendhub-be/internal/dto"
	"lendhub-be/internal/pkg/mailer"
	"lendhub-be/internal/repository/specification"
	"lendhub-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the loan-applied topic and sends the
// application-received mail outside the request path.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishLoanAppliedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	loan, err := uow.LoanRepository().FindOne(ctx, specification.ByID{ID: payload.LoanId})
	if err != nil {
		log.Printf("[ERROR] Failed to get loan %s: %v", payload.LoanId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if loan == nil {
		log.Printf("[WARN] Loan not found: %s", payload.LoanId)
		msg.Ack() // Loan deleted? Ack.
		return
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payload.UserId})
	if err != nil {
		log.Printf("[ERROR] Failed to get user %s: %v", payload.UserId, err)
		msg.Nack()
		return
	}
	if user == nil {
		log.Printf("[WARN] User not found: %s", payload.UserId)
		msg.Ack()
		return
	}

	if err := cs.emailService.SendLoanApplicationReceived(user.Email, user.FullName, loan.LoanAmount, loan.DurationMonths); err != nil {
		log.Printf("[ERROR] Failed to send application-received mail to %s: %v", user.Email, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Application-received mail sent for loan %s", payload.LoanId)
	msg.Ack()
}
