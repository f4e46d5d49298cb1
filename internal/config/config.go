package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Storage  StorageConfig
	Printer  PrinterConfig
	Checkout CheckoutConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Debug bool
}

type APIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

type StorageConfig struct {
	Path string
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	// CharWidth is the thermal print width in characters (48 for 80mm).
	CharWidth int
}

type CheckoutConfig struct {
	ListenAddr    string
	GatewayOrigin string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "mobile-bill")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("API_TIMEOUT_SECONDS", 30)
	viper.SetDefault("API_REQUESTS_PER_SECOND", 10)
	viper.SetDefault("API_BURST", 20)
	viper.SetDefault("STORAGE_PATH", "./storage")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("CHECKOUT_LISTEN_ADDR", "127.0.0.1:8731")
	viper.SetDefault("CHECKOUT_GATEWAY_ORIGIN", "https://checkout.razorpay.com")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		API: APIConfig{
			BaseURL:           viper.GetString("API_BASE_URL"),
			Timeout:           time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
			RequestsPerSecond: viper.GetFloat64("API_REQUESTS_PER_SECOND"),
			Burst:             viper.GetInt("API_BURST"),
		},
		Storage: StorageConfig{
			Path: viper.GetString("STORAGE_PATH"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		Checkout: CheckoutConfig{
			ListenAddr:    viper.GetString("CHECKOUT_LISTEN_ADDR"),
			GatewayOrigin: viper.GetString("CHECKOUT_GATEWAY_ORIGIN"),
		},
	}
}
