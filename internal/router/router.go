package router

import (
	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", api.HealthCheck)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/events", api.StreamEvents)

		habits := apiGroup.Group("/habits")
		{
			habits.GET("", api.ListHabits)
			habits.POST("", api.CreateHabit)
			habits.POST("/mark-missed", api.MarkMissedHabits)
			habits.GET("/:id", api.GetHabit)
			habits.DELETE("/:id", api.DeleteHabit)
			habits.POST("/:id/cycle", api.CycleHabitStatus)
			habits.PUT("/:id/days", api.UpdateHabitDays)
			habits.POST("/:id/reset", api.ResetHabitStats)
			habits.GET("/:id/week", api.GetHabitWeek)
			habits.GET("/:id/stats", api.GetHabitStats)
		}

		todos := apiGroup.Group("/todos")
		{
			todos.GET("", api.ListTodos)
			todos.GET("/pending", api.ListPendingTodos)
			todos.POST("", api.CreateTodo)
			todos.POST("/:id/toggle", api.ToggleTodo)
			todos.DELETE("/:id", api.DeleteTodo)
		}

		shopping := apiGroup.Group("/shopping")
		{
			shopping.GET("", api.ListShoppingItems)
			shopping.GET("/suggestions", api.ListExpenseSuggestions)
			shopping.POST("", api.CreateShoppingItem)
			shopping.POST("/:id/toggle", api.ToggleShoppingItem)
			shopping.POST("/:id/expensed", api.MarkShoppingItemExpensed)
			shopping.DELETE("/:id", api.DeleteShoppingItem)
		}

		journal := apiGroup.Group("/journal")
		{
			journal.GET("/today", api.GetTodayJournal)
			journal.GET("/week", api.GetJournalWeek)
			journal.PUT("/today", api.UpsertTodayJournal)
			journal.GET("/:id/html", api.GetJournalHTML)
		}

		accounts := apiGroup.Group("/accounts")
		{
			accounts.GET("", api.ListBankAccounts)
			accounts.POST("", api.CreateBankAccount)
			accounts.GET("/summary", api.GetBalanceSummary)
			accounts.PUT("/:id/balance", api.UpdateBankAccountBalance)
			accounts.DELETE("/:id", api.DeleteBankAccount)
		}

		transactions := apiGroup.Group("/transactions")
		{
			transactions.GET("", api.ListTransactions)
			transactions.POST("", api.CreateTransaction)
			transactions.GET("/weekly-summary", api.GetWeeklySpendingSummary)
			transactions.DELETE("/:id", api.DeleteTransaction)
		}

		recurring := apiGroup.Group("/recurring")
		{
			recurring.GET("", api.ListRecurringExpenses)
			recurring.POST("", api.CreateRecurringExpense)
			recurring.POST("/process", api.ProcessRecurringExpenses)
			recurring.GET("/upcoming", api.ListUpcomingRecurringExpenses)
			recurring.PUT("/:id", api.UpdateRecurringExpense)
			recurring.POST("/:id/toggle", api.ToggleRecurringExpense)
			recurring.DELETE("/:id", api.DeleteRecurringExpense)
		}

		categories := apiGroup.Group("/categories")
		{
			categories.GET("", api.ListCategories)
			categories.POST("", api.CreateCategory)
			categories.DELETE("/:id", api.DeleteCategory)
		}

		apiGroup.GET("/settings", api.GetSystemSettings)
		apiGroup.PUT("/settings", api.UpdateSystemSettings)

		assistant := apiGroup.Group("/assistant")
		{
			assistant.POST("/ask", api.AskAssistant)
			assistant.POST("/report", api.GenerateReport)
		}
	}

	return r
}
