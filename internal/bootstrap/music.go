// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/typegamer/rhythm-core/pkg/rhythm"
)

// InitMusicCatalog loads the per-level track catalog. A missing catalog
// file is populated with the built-in default tracks; a present but
// invalid one is a startup error.
func InitMusicCatalog(path string) (rhythm.Catalog, error) {
	catalog, err := rhythm.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load music catalog: %w", err)
	}

	logrus.Infof("initialized music catalog from %s", path)
	return catalog, nil
}
