package cron

import (
	"Ripple/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	postMetricJob  *job.PostMetricsJob
	postMetricSpec string
}

func NewCronManager(postMetricJob *job.PostMetricsJob, postMetricSpec string) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		postMetricJob:  postMetricJob,
		postMetricSpec: postMetricSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.postMetricSpec, s.postMetricJob); err != nil {
		return err
	}
	return nil
}

// Run 注册任务并启动引擎
func (s *Manager) Run() error {
	if err := s.RegisterJobs(); err != nil {
		return err
	}
	log.Info("Cron 定时任务引擎启动", "post_metric_spec", s.postMetricSpec)
	s.engine.Start()
	return nil
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
