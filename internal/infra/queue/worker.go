package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadMailer é o contrato do disparo de email consumido pelo worker.
type LeadMailer interface {
	SendWelcome(to, name, segment string) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  LeadMailer
}

func NewWorker(ch *amqp.Channel, mailer LeadMailer) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadWelcomePayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Boas-vindas para %s (segmento %s, evento %s)",
				payload.Email, payload.Segment, payload.EventID)

			if err := w.Mailer.SendWelcome(payload.Email, payload.Name, payload.Segment); err != nil {
				log.Printf("❌ [WORKER] Erro no envio de email: %s", err)
				// Falha de SMTP vai pra DLQ; não requeue para não martelar o servidor.
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Email enviado para %s", payload.Email)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
