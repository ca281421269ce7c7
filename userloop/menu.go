package userloop

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rvsnack/rvterm/inputbus"
	"github.com/rvsnack/rvterm/rvapi"
)

// DepositLimit is the largest single deposit in cents.
const DepositLimit = 25000

func (c *Controller) printMenuInstructions(info *rvapi.UserInfo) {
	c.screen.MoveBottom()
	c.screen.Logo(rvLogo)
	c.screen.Line("Available commands (press key to select):")
	c.screen.Command("<barcode>")
	c.screen.Line(" - buy this item")
	c.screen.Command("B")
	c.screen.Line(" - buy item multiple times")
	c.screen.Command("D")
	c.screen.Line(" - deposit to your account")
	c.screen.Command("F")
	c.screen.Line(" - list matching products")
	c.screen.Command("P")
	c.screen.Line(" - change password")
	c.screen.Command("R")
	c.screen.Line(" - manage your rfid")
	c.screen.Command("U")
	c.screen.Line(" - undo a recent purchase")
	c.screen.Command("<enter>")
	c.screen.Line(" - log out")
	if info.IsAdmin() {
		c.screen.Command("M")
		c.screen.Line(" - enter management mode")
	}
}

// userMenu is the logged-in command loop. It returns when the user logs
// out, a prompt times out, or a card scan ends the session.
func (c *Controller) userMenu(creds *rvapi.Credentials) {
	c.screen.Clear()
	c.printMenuInstructions(c.userInfo(creds))

	for {
		info := c.userInfo(creds)
		c.screen.Printf("\r\nDear %s, your saldo is %s > ", info.Username, FormatMoney(info.MoneyBalance))

		var command []rune
	read:
		for {
			ev, ok := c.bus.Receive(c.cfg.ShortTimeout)
			if !ok {
				c.timedOut()
				return
			}
			switch ev := ev.(type) {
			case inputbus.Scan:
				return
			case inputbus.Key:
				switch ev.Code {
				case inputbus.KeyRune:
					switch ev.Rune {
					case 'b':
						c.screen.Line("")
						if c.multibuy(creds) == flowTimeout {
							return
						}
						break read
					case 'd':
						c.screen.Line("")
						if c.deposit(creds) == flowTimeout {
							return
						}
						break read
					case 'f':
						c.screen.Line("")
						if c.search(creds) == flowTimeout {
							return
						}
						break read
					case 'p':
						c.screen.Line("")
						if c.changePassword(creds) == flowTimeout {
							return
						}
						break read
					case 'r':
						c.screen.Line("")
						if c.changeScanCode(creds) == flowTimeout {
							return
						}
						break read
					case 'u':
						c.screen.Line("")
						if c.returnPurchase(creds) == flowTimeout {
							return
						}
						break read
					case 'm':
						if info.IsAdmin() {
							c.screen.Line("")
							c.states.fire(evEnterManagement)
							res := c.managementMenu(creds)
							c.states.fire(evLeaveManagement)
							if res != flowDone {
								return
							}
							c.printMenuInstructions(info)
							break read
						}
					case 'q':
						// Undocumented logout shortcut kept for
						// long-time users.
						return
					case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
						c.screen.Echo(ev.Rune)
						command = append(command, ev.Rune)
					}
				case inputbus.KeyBackspace:
					if len(command) > 0 {
						c.screen.Backspace()
						command = command[:len(command)-1]
					}
				case inputbus.KeyEnter:
					c.screen.Line("")
					line := string(command)
					switch {
					case line == "":
						return
					case line == "exit":
						c.cfg.Exit()
					case digitsRe.MatchString(line):
						c.purchaseItems(creds, line, 1)
						c.screen.Line("")
						break read
					default:
						c.screen.Error("unknown command: " + line)
						break read
					}
				}
			}
		}
	}
}

// purchaseItems buys count items of barcode and reports the price paid.
func (c *Controller) purchaseItems(creds *rvapi.Credentials, barcode string, count int) {
	if err := c.backend.Purchase(creds, barcode, count); err != nil {
		if apiErr, ok := rvapi.IsAPIError(err); ok {
			c.screen.Error("Purchase failed: " + apiErr.Message)
			return
		}
		c.fatal(err)
	}
	product, err := c.backend.ProductInfo(creds, barcode)
	if err != nil {
		c.fatal(err)
	}
	if product == nil {
		return
	}
	c.screen.Printf("Bought %dx %s (%sEUR) Total (%sEUR)\r\n",
		count, product.Name, FormatMoney(product.SellPrice), FormatMoney(count*product.SellPrice))
}

func (c *Controller) multibuy(creds *rvapi.Credentials) flowResult {
	c.screen.Title("Multibuy")
	c.screen.Line("Enter item barcode:")
	barcode, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}
	if !digitsRe.MatchString(barcode) {
		c.screen.Error("Invalid barcode!")
		c.pause()
		return flowDone
	}

	c.screen.Line("Enter item count to buy:")
	countLine, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}
	if !countRe.MatchString(countLine) {
		c.screen.Error("Invalid count!")
		c.pause()
		return flowDone
	}
	count, _ := strconv.Atoi(countLine)
	c.purchaseItems(creds, barcode, count)
	return flowDone
}

func (c *Controller) deposit(creds *rvapi.Credentials) flowResult {
	c.screen.Title("Deposit money")
	c.screen.Line("How much to deposit? Format: [0-9]+\\.[0-9][0-9]")
	c.screen.Line("At least one number, followed by period, followed by two numbers. For example: '1.00', '0.01', '14.42'")
	line, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}
	amount, valid := ParseMoney(line)
	if !valid {
		c.screen.Line("")
		c.screen.Error("Invalid input. Deposit aborted!")
		return flowDone
	}
	if amount > DepositLimit {
		c.screen.Line("")
		c.screen.Error("You can deposit at most 250 EUR at once. Deposit aborted!")
		return flowDone
	}

	formatted := FormatMoney(amount)
	c.screen.Line("")
	c.screen.Highlight("PLEASE NOTE: WITHDRAWING MONEY IS NOT POSSIBLE.")
	c.screen.Line("")
	c.screen.Line("You can't transfer money to somebody else's account.")
	c.screen.Printf("Please confirm your deposit of %s euros.\r\n", formatted)
	c.screen.Print("PLEASE TYPE '")
	c.screen.Highlight(formatted)
	c.screen.Print("' FOLLOWED BY <ENTER>: ")

	confirmation, ok := c.readLine(c.cfg.ShortTimeout)
	if !ok {
		return c.timedOut()
	}
	switch {
	case confirmation == "":
		c.screen.Line("\r\nDeposit aborted! Cancelled by user.")
		return flowDone
	case confirmation != formatted:
		c.screen.Line("")
		c.screen.Error("Deposit aborted! Given amounts do not match.")
		return flowDone
	}

	for {
		c.screen.Line("")
		c.screen.Line("Did you deposit money as cash or via banktransfer?")
		c.screen.Print("PLEASE TYPE EITHER '")
		c.screen.Highlight("cash")
		c.screen.Print("' OR '")
		c.screen.Highlight("banktransfer")
		c.screen.Print("' FOLLOWED BY <ENTER>:\r\n")
		method, ok := c.readLine(c.cfg.ShortTimeout)
		if !ok {
			return c.timedOut()
		}
		switch method {
		case "":
			c.screen.Line("\r\nDeposit aborted! Cancelled by user.")
			return flowDone
		case "cash", "banktransfer":
			if err := c.backend.Deposit(creds, amount, method); err != nil {
				if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
					c.screen.Error("Deposit failed: " + apiErr.Message)
					return flowDone
				}
				c.fatal(err)
			}
			c.screen.Printf("\r\nDeposited %s EUR.\r\n", formatted)
			return flowDone
		default:
			c.screen.Error("Invalid deposit type entered!")
		}
	}
}

func (c *Controller) search(creds *rvapi.Credentials) flowResult {
	c.screen.Title("Product search")
	c.screen.Line("Enter name or barcode")
	query, ok := c.readLine(c.cfg.ShortTimeout)
	if !ok {
		return c.timedOut()
	}

	products, err := c.backend.SearchProducts(creds, query)
	if err != nil {
		c.fatal(err)
	}
	info := c.userInfo(creds)
	var boxes []rvapi.Box
	if info.IsAdmin() {
		boxes, err = c.backend.SearchBoxes(creds, query)
		if err != nil {
			c.fatal(err)
		}
	}
	if len(products) == 0 && len(boxes) == 0 {
		c.screen.Printf("No results found with query %s\r\n", query)
		return flowDone
	}

	c.screen.Line("\r\nResult products:")
	// Box results repeat their product; print each product once.
	var lines []string
	for _, p := range products {
		lines = append(lines, formatProductLine(p))
	}
	for _, b := range boxes {
		lines = append(lines, formatProductLine(rvapi.Product{
			Barcode:   b.Product.Barcode,
			Name:      b.Product.Name,
			SellPrice: b.Product.SellPrice,
			Stock:     b.Product.Stock,
		}))
	}
	sort.Strings(lines)
	lines = dedupeSorted(lines)
	for _, line := range lines {
		c.screen.Line(line)
	}

	if info.IsAdmin() {
		c.screen.Line("\r\nResult boxes:")
		for _, b := range boxes {
			c.screen.Printf("%s containing %dx of %s %s\r\n",
				b.BoxBarcode, b.ItemsPerBox, b.Product.Barcode, b.Product.Name)
		}
	}
	return flowDone
}

func formatProductLine(p rvapi.Product) string {
	return fmt.Sprintf("%s, %s EUR, ID: %s, %d in stock.", p.Name, FormatMoney(p.SellPrice), p.Barcode, p.Stock)
}

func dedupeSorted(lines []string) []string {
	out := lines[:0]
	for i, line := range lines {
		if i == 0 || line != lines[i-1] {
			out = append(out, line)
		}
	}
	return out
}

func (c *Controller) changePassword(creds *rvapi.Credentials) flowResult {
	c.screen.Title("Change password")

	c.screen.Print("Enter new password: ")
	password1, ok := c.readPassword(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}
	c.screen.Line("")
	c.screen.Print("Enter new password again: ")
	password2, ok := c.readPassword(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}
	c.screen.Line("")

	switch {
	case password1 == "":
		c.screen.Line("Empty password is not allowed! Password not changed.")
	case password1 != password2:
		c.screen.Line("Passwords do not match! Password not changed.")
	default:
		if err := c.backend.ChangePassword(creds, password1); err != nil {
			if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
				c.screen.Error("Password change failed: " + apiErr.Message)
			} else {
				c.fatal(err)
			}
		} else {
			c.screen.Line("Password successfully changed.")
		}
	}
	c.screen.Line("")
	c.confirmEnter()
	c.screen.Line("")
	return flowDone
}

// changeScanCode binds the next scanned code to the logged-in account.
func (c *Controller) changeScanCode(creds *rvapi.Credentials) flowResult {
	c.screen.Title("Set login RFID")
	c.screen.Line("Scan RFID to use for logging in. ENTER to cancel.")
	for {
		ev, ok := c.bus.Receive(c.cfg.ShortTimeout)
		if !ok {
			return c.timedOut()
		}
		switch ev := ev.(type) {
		case inputbus.Scan:
			if err := c.backend.ChangeScanCode(creds, ev.Code); err != nil {
				if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
					c.screen.Error("RFID change failed: " + apiErr.Message)
					return flowDone
				}
				c.fatal(err)
			}
			c.screen.Line("RFID changed successfully")
			return flowDone
		case inputbus.Key:
			if ev.Code == inputbus.KeyEnter {
				c.screen.Line("RFID change cancelled")
				return flowDone
			}
		}
	}
}

func (c *Controller) returnPurchase(creds *rvapi.Credentials) flowResult {
	c.screen.Title("Return recent purchase")
	c.screen.Line("Enter product barcode:")
	barcode, ok := c.readLine(c.cfg.ShortTimeout)
	if !ok {
		return c.timedOut()
	}
	if !digitsRe.MatchString(barcode) {
		c.screen.Error("Invalid barcode!")
		c.pause()
		return flowDone
	}

	if err := c.backend.ReturnProduct(creds, barcode); err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error("Return failed " + apiErr.Message)
			return flowDone
		}
		c.fatal(err)
	}
	product, err := c.backend.ProductInfo(creds, barcode)
	if err != nil {
		c.fatal(err)
	}
	if product != nil {
		c.screen.Printf("Returned product: %s successfully\r\n", product.Name)
	}
	return flowDone
}
