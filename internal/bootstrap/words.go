// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/typegamer/rhythm-core/pkg/words"
)

// InitWordCatalog creates the word catalog over a file-backed list store
// and loads every difficulty partition. Missing lists are seeded from the
// built-in fallbacks, so initialization never fails.
func InitWordCatalog(dir string) *words.Catalog {
	catalog := words.NewCatalog(words.NewFileStore(dir))
	catalog.Load()

	logrus.Infof("initialized word catalog from %s", dir)
	return catalog
}
