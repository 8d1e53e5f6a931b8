// Package event provides a small synchronous publish/subscribe bus.
//
// Handlers are registered per event name and invoked in registration order
// on the publishing goroutine. A Subscription handle identifies a single
// registration so it can be removed later:
//
//	bus := event.NewBus[int]()
//	sub, _ := bus.Subscribe("tick", func(n int) { fmt.Println(n) })
//	bus.Publish("tick", 1)
//	bus.Unsubscribe(sub)
//
// SubscribeOnce registers a handler that is removed right after its first
// invocation. UnsubscribeAll removes every handler of a name, or of every
// name when called with Wildcard.
package event
