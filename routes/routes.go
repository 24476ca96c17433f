package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/controllers"
	"github.com/NguyenTrongThuan612/restaurant-management/middlewares"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

// SetupRouter wires every endpoint. Reads are open to any activated staff
// member; catalog and account administration sit behind the manager guard.
func SetupRouter(db *gorm.DB, mailer *utils.Mailer, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))

	r.GET("/health", controllers.HealthCheck(db))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", controllers.Login(db))
		auth.POST("/refresh", controllers.Refresh(db))
		auth.POST("/logout", controllers.Logout(db))
	}

	authed := api.Group("")
	authed.Use(middlewares.AuthMiddleware(db))
	{
		authed.GET("/users/me", controllers.Me())
		authed.POST("/users/me/change-password", controllers.ChangePassword(db))

		authed.GET("/dishes", controllers.ListDishes(db))
		authed.GET("/dishes/:id", controllers.GetDish(db))

		authed.GET("/combos", controllers.ListCombos(db))
		authed.GET("/combos/:id", controllers.GetCombo(db))

		authed.GET("/dining-tables", controllers.ListDiningTables(db))
		authed.GET("/dining-tables/:id", controllers.GetDiningTable(db))

		authed.GET("/daily-quantities", controllers.ListDailyQuantities(db))
		authed.GET("/daily-quantities/remaining", controllers.RemainingDailyQuantity(db))

		authed.GET("/orders", controllers.ListOrders(db))
		authed.GET("/orders/:id", controllers.GetOrder(db))
		authed.POST("/orders", controllers.CreateOrder(db))
		authed.PATCH("/orders/:id", controllers.UpdateOrder(db))
		authed.PATCH("/orders/:id/cancel", controllers.CancelOrder(db))
		authed.POST("/orders/:id/order-items", controllers.AddOrderItem(db))
		authed.PUT("/orders/:id/order-items/:item_id", controllers.UpdateOrderItemInOrder(db))
		authed.DELETE("/orders/:id/order-items/:item_id", controllers.RemoveOrderItemFromOrder(db))

		authed.POST("/order-items", controllers.CreateOrderItem(db))
		authed.PATCH("/order-items/:id", controllers.UpdateOrderItem(db))
		authed.DELETE("/order-items/:id", controllers.DeleteOrderItem(db))

		authed.GET("/bills", controllers.ListBills(db))
		authed.GET("/bills/:id", controllers.GetBill(db))
		authed.POST("/bills", controllers.CreateBill(db))
	}

	manager := authed.Group("")
	manager.Use(middlewares.ManagerOnly())
	{
		manager.GET("/users", controllers.ListUsers(db))
		manager.POST("/users", controllers.CreateUser(db))
		manager.GET("/users/:id", controllers.GetUser(db))
		manager.PATCH("/users/:id", controllers.UpdateUser(db))
		manager.POST("/users/:id/reset-password", controllers.ResetPassword(db, mailer))

		manager.POST("/dishes", controllers.CreateDish(db))
		manager.PATCH("/dishes/:id", controllers.UpdateDish(db))
		manager.DELETE("/dishes/:id", controllers.DeleteDish(db))

		manager.POST("/combos", controllers.CreateCombo(db))
		manager.PATCH("/combos/:id", controllers.UpdateCombo(db))
		manager.DELETE("/combos/:id", controllers.DeleteCombo(db))
		manager.POST("/combos/:id/dish", controllers.AddDishToCombo(db))
		manager.PUT("/combos/:id/dish/:dish_id", controllers.UpdateDishInCombo(db))
		manager.DELETE("/combos/:id/dish/:dish_id", controllers.RemoveDishFromCombo(db))

		manager.POST("/dining-tables", controllers.CreateDiningTable(db))
		manager.PATCH("/dining-tables/:id", controllers.UpdateDiningTable(db))
		manager.DELETE("/dining-tables/:id", controllers.DeleteDiningTable(db))

		manager.POST("/daily-quantities", controllers.UpsertDailyQuantity(db))

		manager.GET("/statistical/revenue", controllers.Revenue(db))
		manager.GET("/statistical/dish-and-combo-sold", controllers.DishAndComboSold(db))
		manager.GET("/statistical/employee-performance", controllers.EmployeePerformance(db))
	}

	r.NoRoute(func(c *gin.Context) {
		utils.Respond(c, http.StatusNotFound, "Route not found", nil)
	})

	return r
}
