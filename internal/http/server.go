package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"

	"github.com/Shashhank12/Budget-Buddy/internal/ai"
	"github.com/Shashhank12/Budget-Buddy/internal/config"
	"github.com/Shashhank12/Budget-Buddy/internal/store"
)

type Server struct {
	cfg       *config.Config
	store     *store.Store
	assistant *ai.Client
	txSchema  *gojsonschema.Schema
}

func NewServer(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))
	r.Use(logging())
	r.LoadHTMLGlob("templates/*.html")

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(txUpdateSchema))
	if err != nil {
		panic(err)
	}

	s := &Server{
		cfg:       cfg,
		store:     store.New(db),
		assistant: ai.NewClient(cfg),
		txSchema:  schema,
	}

	r.GET("/", s.index)
	r.GET("/login", s.showLogin)
	r.POST("/login", s.login)
	r.GET("/register", s.showRegister)
	r.POST("/register", s.register)
	r.GET("/logout", s.logout)

	pages := r.Group("/")
	pages.Use(s.requireUserHTML())
	{
		pages.GET("/setup", s.showSetup)
		pages.POST("/setup", s.setup)
		pages.GET("/dashboard", s.dashboard)
		pages.POST("/dashboard", s.dashboard)
		pages.GET("/transaction", s.showTransaction)
		pages.POST("/transaction", s.recordTransaction)
		pages.GET("/manage_transaction", s.manageTransactions)
		pages.GET("/category", s.showCategories)
		pages.POST("/category", s.addCategory)
		pages.GET("/record_goal", s.showRecordGoal)
		pages.POST("/record_goal", s.recordGoal)
		pages.GET("/manage_goals", s.manageGoals)
		pages.POST("/update_goal_progress", s.updateGoalProgress)
		pages.POST("/delete_goal/:id", s.deleteGoal)
		pages.GET("/edit_goal/:id", s.showEditGoal)
		pages.POST("/edit_goal/:id", s.editGoal)
		pages.GET("/manage_accounts", s.manageAccounts)
		pages.POST("/add_account", s.addAccount)
		pages.POST("/edit_account/:id", s.editAccount)
		pages.POST("/delete_account/:id", s.deleteAccount)
	}

	api := r.Group("/api")
	api.Use(s.requireUserJSON())
	{
		api.GET("/pie-chart", s.apiPieChart)
		api.GET("/line-chart", s.apiLineChart)
		api.GET("/category-pie-chart", s.apiCategoryPieChart)
		api.GET("/prediction-chart", s.apiPredictionChart)
		api.GET("/spending-prediction", s.apiSpendingPrediction)
		api.POST("/chatbot", s.apiChatbot)
		api.GET("/transactions", s.apiListTransactions)
		api.POST("/transactions/update", s.apiUpdateTransaction)
		api.DELETE("/transactions/delete/:id", s.apiDeleteTransaction)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
