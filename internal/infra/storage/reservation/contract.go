package reservation

import "github.com/krasivo-app/SalonBookingService/pkg/txmanager"

// DBExecutor интерфейс исполнителя запросов (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.Executor
