package mq

import (
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("internal/storage/mq")

// kotelHooks traces produce and fetch calls. The tracer reads the global
// provider and propagator, so it is built after telemetry is initialized.
func kotelHooks() kgo.Opt {
	k := kotel.NewKotel(kotel.WithTracer(kotel.NewTracer()))
	return kgo.WithHooks(k.Hooks()...)
}

func clientOpts(addresses []string, clientID string) []kgo.Opt {
	return []kgo.Opt{
		kgo.SeedBrokers(addresses...),
		kgo.ClientID(clientID),
		kgo.AllowAutoTopicCreation(),
		kotelHooks(),
	}
}
