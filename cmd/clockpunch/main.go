package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// clockMessage mirrors the payload the server's clock subscriber accepts.
type clockMessage struct {
	EmployeeID string   `json:"employee_id"`
	Token      string   `json:"token"`
	Action     string   `json:"action"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Comments   string   `json:"comments,omitempty"`
	Timestamp  int64    `json:"timestamp"`
}

func main() {
	var (
		employee  = flag.String("employee", "", "employee profile id (required)")
		accessTok = flag.String("token", os.Getenv("AGENCY_TOKEN"), "employee access token (default $AGENCY_TOKEN)")
		action    = flag.String("action", "in", "in or out")
		lat       = flag.Float64("lat", 30.1881886, "reported latitude")
		lon       = flag.Float64("lon", 74.3046929, "reported longitude")
		drift     = flag.Float64("drift", 0, "random drift in degrees applied to lat/lon")
		noGPS     = flag.Bool("no-gps", false, "omit the location")
		comments  = flag.String("comments", "", "clock-out comments")
	)
	flag.Parse()

	id, err := uuid.Parse(*employee)
	if err != nil {
		fmt.Fprintf(os.Stderr, "usage: %s -employee <uuid> -token <jwt> [-action in|out] [-lat f -lon f]\n", os.Args[0])
		os.Exit(1)
	}
	if *accessTok == "" {
		fmt.Fprintf(os.Stderr, "error: -token or AGENCY_TOKEN is required\n")
		os.Exit(1)
	}
	if *action != "in" && *action != "out" {
		fmt.Fprintf(os.Stderr, "error: action must be in or out\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("agency-clockpunch-" + uuid.NewString()[:8])

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	msg := clockMessage{
		EmployeeID: id.String(),
		Token:      *accessTok,
		Action:     *action,
		Comments:   *comments,
		Timestamp:  time.Now().Unix(),
	}
	if !*noGPS {
		la := *lat + (rand.Float64()-0.5) * *drift
		lo := *lon + (rand.Float64()-0.5) * *drift
		msg.Latitude, msg.Longitude = &la, &lo
	}

	payload, _ := json.Marshal(msg)
	topic := fmt.Sprintf("agency/employee/%s/clock", id)

	token := client.Publish(topic, 1, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		log.Fatalf("publish: %v", err)
	}
	log.Printf("published to %s: %s", topic, payload)
}
