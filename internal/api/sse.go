package api

import (
	"encoding/json"
	"log"

	"github.com/enokido/lixianTool/internal/event"
	"github.com/gin-gonic/gin"
)

// SSEHandler 把事件总线上的同步事件推给面板。
// InMemoryBus 是 callback 模式，这里用一个带缓冲的 channel 做桥接，
// 慢客户端直接丢消息，不能反压到总线。
func SSEHandler(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Transfer-Encoding", "chunked")

	clientChan := make(chan event.Event, 10)

	bridgeHandler := func(e event.Event) {
		select {
		case clientChan <- e:
		default:
			// client channel full, drop
		}
	}

	topics := []event.EventType{
		event.EventTaskSyncComplete,
		event.EventTaskSyncFailed,
		event.EventSessionExpired,
	}

	subIDs := make(map[event.EventType]string)
	for _, t := range topics {
		subIDs[t] = event.GlobalBus.Subscribe(t, bridgeHandler)
	}

	c.SSEvent("message", "connected")
	c.Writer.Flush()

	defer func() {
		for t, id := range subIDs {
			event.GlobalBus.Unsubscribe(t, id)
		}
		log.Println("SSE Client disconnected")
	}()

	for {
		select {
		case evt := <-clientChan:
			data, err := json.Marshal(evt.Payload)
			if err != nil {
				log.Printf("SSE JSON Marshal error: %v", err)
				continue
			}
			c.SSEvent(string(evt.Type), string(data))
			c.Writer.Flush()

		case <-c.Request.Context().Done():
			return
		}
	}
}
