package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/workshift-tools/workshift/backend/internal/config"
	"github.com/workshift-tools/workshift/backend/internal/domain"
	"github.com/workshift-tools/workshift/backend/internal/repository"
	"github.com/workshift-tools/workshift/backend/internal/schedule"
	"github.com/workshift-tools/workshift/backend/internal/workday"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	workdayGate schedule.Gate

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// 工作日信号源：节假日表 + 周末规则，外面套一层 redis 缓存
	gate := workday.NewCachedGate(
		workday.NewCalendarGate(repo),
		rdb,
		time.Duration(cfg.Redis.WorkdayCacheExpiration)*time.Second,
		time.Duration(cfg.Redis.OperationTimeout)*time.Second,
	)

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		workdayGate: gate,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.myInfo).Get("/my-info", h.GetMyInfo)

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.GetAllHolidays)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateHoliday)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/{id}", h.DeleteHoliday)
		})

		r.Route("/workshifts", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateWorkshift)
			r.Get("/", h.GetAllWorkshifts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.workshift)
				r.Get("/", h.GetWorkshift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateWorkshift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteWorkshift)

				// 查询接口：时间一律通过参数显式传入，方便确定性地测试
				r.Get("/today", h.GetTodayShift)
				r.Get("/tomorrow", h.GetTomorrowShift)
				r.Get("/active", h.GetActiveShift)
				r.Get("/next-boundary", h.GetNextBoundary)
				r.Get("/calendar", h.GetCalendar)
			})
		})
	})
}
