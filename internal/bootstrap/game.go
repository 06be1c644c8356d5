// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package bootstrap wires the game components together in dependency
// order for the application entry point.
package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/typegamer/rhythm-core/pkg/mechanics"
	"github.com/typegamer/rhythm-core/pkg/rhythm"
	"github.com/typegamer/rhythm-core/pkg/session"
	"github.com/typegamer/rhythm-core/pkg/words"
)

// InitCoordinator builds the challenge generator, the scorer and the
// session coordinator on top of the already-initialized stores.
func InitCoordinator(cfg mechanics.Config, catalog *words.Catalog, store session.StatsStore, tracks rhythm.Catalog) *session.Coordinator {
	generator := mechanics.NewGenerator(cfg, catalog)
	scorer := mechanics.NewScorer(cfg)
	coordinator := session.NewCoordinator(store, generator, scorer, tracks)

	logrus.Info("initialized session coordinator")
	return coordinator
}
