package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/binhbb2204/Business-Directory-Group13/cli/config"
	"github.com/binhbb2204/Business-Directory-Group13/internal/mapview"
	live "github.com/binhbb2204/Business-Directory-Group13/internal/websocket"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var watchURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open a live directory session",
	Long: `Open a live session over websocket. Each command re-filters the list on the
server and prints the new result.

Commands:
  category <name>       set the category (all, restaurant, cafe, ...)
  rating <value>        set the maximum rating
  locate <lat> <lng>    report a position
  deny                  report that location access was denied
  relocate              allow a new position to be reported
  reset                 clear the filters
  quit                  end the session`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	target := watchURL
	if target == "" {
		target = config.LoadOrDefault().WebSocketURL()
	}

	conn, _, err := websocket.DefaultDialer.Dial(target, nil)
	if err != nil {
		printError(fmt.Sprintf("Failed to connect: %v", err))
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			printFrame(cmd.OutOrStdout(), data)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-done:
			fmt.Println("Session closed by server")
			return nil
		case <-interrupt:
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			msg, quit, err := parseWatchCommand(line)
			if quit {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err != nil {
				printError(err.Error())
				continue
			}
			if msg == nil {
				continue
			}
			if err := conn.WriteJSON(msg); err != nil {
				return fmt.Errorf("send: %w", err)
			}
		}
	}
}

// parseWatchCommand turns one input line into a session frame. A nil frame
// with no error means the line was blank.
func parseWatchCommand(line string) (*live.ClientMessage, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "/quit":
		return nil, true, nil
	case "category":
		if len(fields) != 2 {
			return nil, false, fmt.Errorf("usage: category <name>")
		}
		return &live.ClientMessage{Type: live.MessageTypeSetCategory, Category: fields[1]}, false, nil
	case "rating":
		if len(fields) != 2 {
			return nil, false, fmt.Errorf("usage: rating <value>")
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, false, fmt.Errorf("invalid rating %q", fields[1])
		}
		return &live.ClientMessage{Type: live.MessageTypeSetMaxRating, MaxRating: &v}, false, nil
	case "locate":
		if len(fields) != 3 {
			return nil, false, fmt.Errorf("usage: locate <lat> <lng>")
		}
		lat, err1 := strconv.ParseFloat(fields[1], 64)
		lng, err2 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil {
			return nil, false, fmt.Errorf("invalid coordinate")
		}
		return &live.ClientMessage{Type: live.MessageTypeLocation, Lat: &lat, Lng: &lng}, false, nil
	case "deny":
		return &live.ClientMessage{Type: live.MessageTypeLocation, Error: "permission_denied"}, false, nil
	case "relocate":
		return &live.ClientMessage{Type: live.MessageTypeRelocate}, false, nil
	case "reset":
		return &live.ClientMessage{Type: live.MessageTypeReset}, false, nil
	default:
		return nil, false, fmt.Errorf("unknown command %q", fields[0])
	}
}

type frameState struct {
	Category  models.Category   `json:"category"`
	MaxRating float64           `json:"max_rating"`
	Location  models.Coordinate `json:"location"`
}

func printFrame(w io.Writer, data []byte) {
	var frame struct {
		Type       live.MessageType         `json:"type"`
		Seq        int64                    `json:"seq"`
		Error      string                   `json:"error"`
		Code       string                   `json:"code"`
		Count      int                      `json:"count"`
		Businesses []models.Business        `json:"businesses"`
		State      frameState               `json:"state"`
		Location   *models.LocationResponse `json:"location"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		fmt.Fprintf(w, "unreadable frame: %v\n", err)
		return
	}

	switch frame.Type {
	case live.MessageTypeError:
		fmt.Fprintf(w, "✗ %s (%s)\n", frame.Error, frame.Code)
	case live.MessageTypeSnapshot:
		fmt.Fprintf(w, "\n#%d  %s, rating <= %s, centre %.4f,%.4f  (%d results)\n",
			frame.Seq, frame.State.Category.Label(), mapview.FormatRating(frame.State.MaxRating),
			frame.State.Location.Lat, frame.State.Location.Lng, frame.Count)
		if frame.Location != nil && frame.Location.Fallback {
			fmt.Fprintf(w, "location unavailable, using default centre (%s)\n", frame.Location.Reason)
		}
		renderTable(w, frame.Businesses, tableWidth())
	}
}

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "", "Websocket URL (default from config)")
}
