// Package memory defines Store, the conversation history kept between Stream
// calls of a multi-turn chat. The client itself is stateless: callers read the
// stored turns into RequestSpec.History and append the prompt and the answer
// once a stream completes.
//
// The bundled implementation lives in [github.com/leofalp/aistream/providers/memory/inmemory].
package memory
