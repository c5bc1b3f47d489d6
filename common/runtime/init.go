package runtime

import (
	"fmt"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/common"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/common/version"
	"github.com/ridgeline-tours/asset-repo/datastores"
)

func RunStartupSequence() {
	version.Print(true)
	if err := CheckAssetRoot(config.Get().Assets.RootDirectory); err != nil {
		sentry.CaptureException(err)
		logrus.Fatal(err)
	}
	LoadDatastore()
}

// CheckAssetRoot makes sure the public asset directory exists and is a directory.
func CheckAssetRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrap(err, "asset root is not readable")
	}
	if !info.IsDir() {
		return errors.Wrap(common.ErrInvalidConfig, fmt.Sprintf("asset root %s is not a directory", root))
	}
	logrus.Info("Asset root: ", root)
	return nil
}

// LoadDatastore opens the configured datastore once at startup. Failures are logged
// but not fatal: the migration endpoint reports them per request.
func LoadDatastore() {
	ds := config.Get().Datastore
	logrus.Info("Initializing datastore...")
	logrus.Info(fmt.Sprintf("\t%s: %s", ds.Type, describeDatastore(ds)))

	store, err := datastores.Open(ds)
	if err != nil {
		sentry.CaptureException(err)
		logrus.Warn("\t\tDatastore is not usable: ", err)
		return
	}

	if err = datastores.Verify(rcontext.Initial(), store); err != nil {
		logrus.Warn("\t\tDatastore could not be verified: ", err)
	}
}

func describeDatastore(ds config.DatastoreConfig) string {
	switch ds.Type {
	case "s3":
		return ds.Options["endpoint"] + "/" + ds.Options["bucketName"]
	case "file":
		return ds.Options["path"]
	}
	return "(unknown)"
}
