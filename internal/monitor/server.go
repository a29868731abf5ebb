package monitor

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/qq148376839/vnpy/internal/events"
	"github.com/qq148376839/vnpy/internal/gateway"
)

var log = logrus.WithField("component", "monitor")

// Config 监控服务配置
type Config struct {
	Addr string // HTTP 监听地址
}

// Server 网关观测服务：提供行情/订单快照查询与事件推流
type Server struct {
	cfg      Config
	engine   *events.Engine
	gw       *gateway.LongPortGateway
	upgrader websocket.Upgrader
}

// New 创建监控服务
func New(cfg Config, engine *events.Engine, gw *gateway.LongPortGateway) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":18080"
	}
	return &Server{
		cfg:    cfg,
		engine: engine,
		gw:     gw,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Addr 返回监听地址
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Router 构建 HTTP 路由
func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ts": time.Now().UnixMilli()})
	})

	api := r.Group("/api")
	api.GET("/ticks", s.handleTicks)
	api.GET("/orders", s.handleOrders)

	r.GET("/ws", s.handleWS)
	return r
}

func (s *Server) handleTicks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.gw.Ticks()})
}

func (s *Server) handleOrders(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	orders := s.gw.Orders()
	if activeOnly {
		filtered := orders[:0]
		for _, o := range orders {
			if o.IsActive() {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	c.JSON(http.StatusOK, gin.H{"items": orders})
}

// handleWS 将事件引擎的推送桥接到 WebSocket 连接
func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := s.engine.Subscribe()
	defer s.engine.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case evt := <-sub:
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// Serve 在后台启动 HTTP 服务，返回可用于优雅关闭的 *http.Server
func (s *Server) Serve() *http.Server {
	httpSrv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Infof("监控服务监听于 %s", s.cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("监控服务异常退出: %v", err)
		}
	}()
	return httpSrv
}
