package main // API server entry point

import (
    "log"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/aerovia/emptyleg/internal/config"
    "github.com/aerovia/emptyleg/internal/database"
    "github.com/aerovia/emptyleg/internal/handler"
    "github.com/aerovia/emptyleg/internal/middleware"
    "github.com/aerovia/emptyleg/internal/queue"
    "github.com/aerovia/emptyleg/internal/repository"
    "github.com/aerovia/emptyleg/internal/router"
    queue_publisher "github.com/aerovia/emptyleg/internal/service"
    "github.com/aerovia/emptyleg/internal/service/booking"
    "github.com/aerovia/emptyleg/internal/service/revenue"
)

func main() {
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional; rate limiting and caching degrade to
    // pass-through when it is nil.
    rdb := config.NewRedisClient()

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    flights := repository.NewFlightRepo(db)
    customers := repository.NewCustomerRepo(db)
    operators := repository.NewOperatorRepo(db)
    bookings := repository.NewBookingRepo(db, flights)
    notifications := repository.NewNotificationRepo(db)
    revenues := repository.NewRevenueRepo(db)

    bookingSvc := booking.NewService(bookings, customers, operators, flights, queue_publisher.AMQPDispatcher{URL: cfg.AMQPURL})
    revenueSvc := revenue.NewService(revenues)

    // Background consumer: writes operator inbox rows and the booking
    // log from committed events.
    go func() {
        if err := queue.StartBookingConsumer(cfg.AMQPURL, notifications); err != nil {
            log.Printf("booking-consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
    router.RegisterPublic(e, handler.NewPublicHandler(flights), cache)
    router.RegisterCustomer(e, handler.NewBookingHandler(bookingSvc, bookings, customers), cfg.JWTSecret)
    router.RegisterOperator(e, handler.NewOperatorHandler(flights, operators, bookings, revenueSvc), cfg.JWTSecret)
    router.RegisterAdmin(e, handler.NewAdminHandler(flights), handler.NewRevenueHandler(revenueSvc), cfg.JWTSecret)
    router.RegisterNotifications(e, handler.NewNotificationHandler(notifications), cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
