package consumer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/events"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/storage"
)

// ConsumeRegistrationSubmitted archives a PDF snapshot of each submitted
// form next to the client's uploads, so reviewers get a frozen copy even if
// the form is later reopened and edited.
func ConsumeRegistrationSubmitted(
	ctx context.Context,
	reader *kafkago.Reader,
	registrationService registration.Service,
	store storage.Store,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.registration_submitted")
	log.Info("registration submitted consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("registration submitted consumer stopped")
				return
			}
			log.Error("fetch registration submitted message failed", zap.Error(err))
			continue
		}

		var event events.RegistrationSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode registration_submitted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		data, err := registrationService.ExportPDF(ctx, event.ClientID)
		if err != nil {
			log.Error("render submission snapshot failed",
				zap.String("client_id", event.ClientID),
				zap.Error(err),
			)
			continue
		}

		objectPath := fmt.Sprintf("clients/%s/registration-snapshot.pdf", event.ClientID)
		if _, err := store.Save(ctx, objectPath, bytes.NewReader(data)); err != nil {
			log.Error("store submission snapshot failed",
				zap.String("client_id", event.ClientID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit registration submitted message failed", zap.Error(err))
			continue
		}

		log.Info("submission snapshot archived",
			zap.String("client_id", event.ClientID),
			zap.String("company_name", event.CompanyName),
		)
	}
}
