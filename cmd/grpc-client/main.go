package main

import (
	"context"
	"flag"
	"log"
	"time"

	dirgrpc "github.com/binhbb2204/Business-Directory-Group13/internal/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	target := flag.String("target", "localhost:50051", "gRPC server address")
	category := flag.String("category", "all", "category filter")
	maxRating := flag.Float64("max-rating", 5, "maximum rating")
	flag.Parse()

	conn, err := grpc.NewClient(*target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	defer conn.Close()
	c := dirgrpc.NewClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	log.Println("Testing Options...")
	opts, err := c.Options(ctx, &dirgrpc.OptionsRequest{})
	if err != nil {
		log.Printf("could not get options: %v", err)
	} else {
		log.Printf("%d categories, %d rating steps, %d businesses", len(opts.Categories), len(opts.RatingSteps), opts.Counts["all"])
	}

	log.Println("Testing Filter...")
	r, err := c.Filter(ctx, &dirgrpc.FilterRequest{Category: *category, MaxRating: maxRating})
	if err != nil {
		log.Printf("could not filter: %v", err)
	} else {
		log.Printf("Found %d businesses", r.Count)
		for _, b := range r.Businesses {
			log.Printf(" - %s (%s, %.1f)", b.Name, b.Type.Label(), b.Rating)
		}
	}

	log.Println("Testing Locate...")
	loc, err := c.Locate(ctx, &dirgrpc.LocateRequest{Error: "unsupported"})
	if err != nil {
		log.Printf("could not locate: %v", err)
	} else {
		log.Printf("Centre: %.4f, %.4f (fallback=%t)", loc.Coordinate.Lat, loc.Coordinate.Lng, loc.Fallback)
	}
}
