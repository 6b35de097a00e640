// @title           promolink API
// @version         1.0
// @description     API маркетплейса брендов и инфлюенсеров (документация Swagger).
// @contact.name    promolink
// @contact.email   support@promolink.app
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "promolink_backend/internal/app"

func main() {
	app.Run()
}
