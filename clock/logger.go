package clock

import "github.com/sirupsen/logrus"

// log 时钟模块的日志记录器
var log = logrus.WithField("module", "clock")
