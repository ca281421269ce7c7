package userloop

import (
	"strconv"

	"github.com/rvsnack/rvterm/inputbus"
	"github.com/rvsnack/rvterm/rvapi"
)

func (c *Controller) printManagementInstructions() {
	c.screen.MoveBottom()
	c.screen.Logo(rvLogo)
	c.screen.Line("=== management mode ===")
	c.screen.Command("<barcode>")
	c.screen.Line(" - IF FOUND update price and count ELSE add as a new item/box")
	c.screen.Command("F")
	c.screen.Line(" - list matching products")
	c.screen.Command("I")
	c.screen.Line(" - update all item/box properties")
	c.screen.Command("P")
	c.screen.Line(" - change password of an user")
	c.screen.Command("<enter>")
	c.screen.Line(" - exit management mode")
}

// managementMenu is the admin command loop. Prompts here use the long
// timeout; stocking a delivery involves walking to the shelf and back.
func (c *Controller) managementMenu(creds *rvapi.Credentials) flowResult {
	c.screen.Clear()
	for {
		info := c.userInfo(creds)
		c.printManagementInstructions()
		c.screen.Printf("\r\nDear %s, your saldo is %s > ", info.Username, FormatMoney(info.MoneyBalance))

		var command []rune
	read:
		for {
			ev, ok := c.bus.Receive(c.cfg.LongTimeout)
			if !ok {
				return c.timedOut()
			}
			switch ev := ev.(type) {
			case inputbus.Scan:
				return flowLogout
			case inputbus.Key:
				switch ev.Code {
				case inputbus.KeyRune:
					switch ev.Rune {
					case 'f':
						c.screen.Line("")
						if c.search(creds) == flowTimeout {
							return flowDone
						}
						c.screen.Line("")
						break read
					case 'i':
						c.screen.Line("")
						if c.changeItemProperties(creds) == flowTimeout {
							return flowTimeout
						}
						c.screen.Line("")
						break read
					case 'p':
						c.screen.Line("")
						if c.changePasswordAdmin(creds) == flowTimeout {
							return flowTimeout
						}
						c.screen.Line("")
						break read
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
						c.screen.Clear()
						return flowDone
					case digitsRe.MatchString(line):
						if c.stockItem(creds, line) == flowTimeout {
							return flowTimeout
						}
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

// stockItem dispatches a scanned or typed barcode: buy in an existing
// product or box, or start the new-item flow for an unknown code.
func (c *Controller) stockItem(creds *rvapi.Credentials, barcode string) flowResult {
	product, err := c.backend.ProductInfo(creds, barcode)
	if err != nil {
		c.fatal(err)
	}
	if product != nil {
		return c.buyInProduct(creds, barcode)
	}
	box, err := c.backend.BoxInfo(creds, barcode)
	if err != nil {
		c.fatal(err)
	}
	if box != nil {
		return c.buyInBox(creds, barcode)
	}
	c.screen.Error("No box or product found with barcode " + barcode)
	return c.newItem(creds, barcode)
}

func (c *Controller) newItem(creds *rvapi.Credentials, barcode string) flowResult {
	c.screen.Line("Add a new box or product? [bp] or Enter to cancel.")
	for {
		ev, ok := c.bus.Receive(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		key, isKey := ev.(inputbus.Key)
		if !isKey {
			continue
		}
		switch key.Code {
		case inputbus.KeyEnter:
			c.screen.Line("Cancelled!")
			return flowDone
		case inputbus.KeyRune:
			switch key.Rune {
			case 'b', 'B':
				c.screen.Line("")
				return c.newBox(creds, barcode)
			case 'p', 'P':
				c.screen.Line("")
				return c.newProduct(creds, barcode)
			}
		}
	}
}

// promptMoney loops until the operator enters a valid price or an empty
// line. printPrompt runs before every attempt so the format reminder
// stays visible after a rejected entry.
func (c *Controller) promptMoney(printPrompt func()) (cents int, empty bool, res flowResult) {
	for {
		printPrompt()
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return 0, false, c.timedOut()
		}
		if line == "" {
			return 0, true, flowDone
		}
		if n, valid := ParseMoney(line); valid {
			return n, false, flowDone
		}
		c.screen.Error("Invalid price entered, please retry!")
	}
}

func (c *Controller) printMoneyFormatHint() {
	c.screen.Line("At least one number, followed by period, followed by two numbers. For example: '1.00', '0.01', '14.42'")
}

// suggestPrice fetches the global margin and prints the derived sell
// price suggestion for buyPrice.
func (c *Controller) suggestPrice(creds *rvapi.Credentials, buyPrice int, perBox int) int {
	margin, err := c.backend.Margin(creds)
	if err != nil {
		c.fatal(err)
	}
	suggested := SuggestSellPrice(buyPrice, margin)
	c.screen.Printf("Suggest %s calculated with the margin of %s\r\n",
		FormatMoney(suggested*perBox), formatMarginPercent(margin))
	return suggested
}

func (c *Controller) newProduct(creds *rvapi.Credentials, barcode string) flowResult {
	c.screen.Line("Creating a new product. Enter to cancel.")
	c.screen.Line("Enter product name:")
	name, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}
	if name == "" {
		c.screen.Line("Cancelled.")
		return flowDone
	}
	c.screen.Line("")

	buyPrice, empty, res := c.promptMoney(func() {
		c.screen.Line("Enter item buyprice. Format: [0-9]+\\.[0-9][0-9]")
		c.printMoneyFormatHint()
	})
	if res == flowTimeout {
		return res
	}
	if empty {
		c.screen.Line("Cancelled.")
		return flowDone
	}
	c.screen.Line("")

	var sellPrice int
	for {
		c.screen.Line("\r\nEnter item sellprice. Format: [0-9]+\\.[0-9][0-9]")
		c.printMoneyFormatHint()
		suggested := c.suggestPrice(creds, buyPrice, 1)
		c.screen.Printf("Modify or keep [%s]:\r\n", FormatMoney(suggested))
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if line == "" {
			c.screen.Line("Using the suggested price.")
			sellPrice = suggested
			break
		}
		if n, valid := ParseMoney(line); valid {
			sellPrice = n
			break
		}
		c.screen.Error("Invalid price entered, please retry!")
	}
	c.screen.Line("")

	var stock int
	for {
		c.screen.Line("Enter item stock. Format: [0-9]+")
		c.screen.Line("Modify or keep [0]")
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if line == "" {
			c.screen.Line("Nothing changed.")
			break
		}
		if digitsRe.MatchString(line) {
			stock, _ = strconv.Atoi(line)
			break
		}
		c.screen.Error("Invalid stock entered, please retry!")
	}
	c.screen.Line("")

	category, res := c.promptCategory(creds, nil)
	if res == flowTimeout {
		return res
	}

	if err := c.backend.AddProduct(creds, barcode, name, category.CategoryID, buyPrice, sellPrice, stock); err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error(apiErr.Message)
			return flowDone
		}
		c.fatal(err)
	}
	c.screen.Line("Product added.")
	return flowDone
}

// promptCategory lists the available categories and reads a choice.
// With a non-nil current the empty line keeps it; otherwise the entry
// is mandatory.
func (c *Controller) promptCategory(creds *rvapi.Credentials, current *rvapi.Category) (rvapi.Category, flowResult) {
	for {
		if current != nil {
			c.screen.Line("Please enter product category id.")
		} else {
			c.screen.Line("Enter product category id.")
		}
		c.screen.Line("Categories available:")
		categories, err := c.backend.Categories(creds)
		if err != nil {
			c.fatal(err)
		}
		for _, cat := range categories {
			c.screen.Printf("%s, id: %d\r\n", cat.Description, cat.CategoryID)
		}
		if current != nil {
			c.screen.Printf("Modify or keep [%s]:\r\n", current.Description)
		}
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			c.timedOut()
			return rvapi.Category{}, flowTimeout
		}
		if line == "" {
			if current != nil {
				c.screen.Line("Nothing changed.")
				return *current, flowDone
			}
			c.screen.Error("Invalid category id entered, please retry!")
			continue
		}
		if !digitsRe.MatchString(line) {
			c.screen.Error("Invalid category entered, please retry!")
			continue
		}
		chosen, _ := strconv.Atoi(line)
		found := false
		var picked rvapi.Category
		for _, cat := range categories {
			if cat.CategoryID == chosen {
				picked = cat
				found = true
				break
			}
		}
		if !found {
			c.screen.Error("Invalid category id entered, please retry!")
			continue
		}
		return picked, flowDone
	}
}

func (c *Controller) newBox(creds *rvapi.Credentials, boxBarcode string) flowResult {
	c.screen.Line("Creating a new box.")
	var productBarcode string
	for {
		c.screen.Line("Enter product barcode.")
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if line == "" {
			c.screen.Line("Cancelled.")
			return flowDone
		}
		if !digitsRe.MatchString(line) {
			c.screen.Error("Invalid barcode entered, please retry!")
			continue
		}
		product, err := c.backend.ProductInfo(creds, line)
		if err != nil {
			c.fatal(err)
		}
		if product != nil {
			c.screen.Printf("Found an existing product with the given barcode: %s\r\n", product.Name)
		} else {
			c.screen.Line("Couldn't find an existing product with the given barcode.")
			c.screen.Line("")
			if c.newProduct(creds, line) == flowTimeout {
				return flowTimeout
			}
			created, err := c.backend.ProductInfo(creds, line)
			if err != nil {
				c.fatal(err)
			}
			if created == nil {
				c.screen.Error("Adding new product failed!")
				return flowDone
			}
		}
		productBarcode = line
		break
	}
	c.screen.Line("")

	var itemsPerBox int
	for {
		c.screen.Line("Enter number of products in a box. Format: [1-9][0-9]*")
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		// A zero-item box would make every per-item price division
		// meaningless, so the count must be positive.
		if countRe.MatchString(line) {
			itemsPerBox, _ = strconv.Atoi(line)
			break
		}
		c.screen.Error("Invalid number entered, please retry!")
	}
	c.screen.Line("")

	if err := c.backend.AddBox(creds, boxBarcode, productBarcode, itemsPerBox); err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error(apiErr.Message)
			return flowDone
		}
		c.fatal(err)
	}
	c.screen.Line("Box added.")
	c.screen.Line("")
	return c.buyInBox(creds, boxBarcode)
}

func (c *Controller) buyInBox(creds *rvapi.Credentials, barcode string) flowResult {
	box, err := c.backend.BoxInfo(creds, barcode)
	if err != nil {
		c.fatal(err)
	}
	if box == nil {
		c.screen.Error("Buy in error: No box found with barcode " + barcode)
		return flowDone
	}
	c.screen.Printf("Found a box containing %dx of %s\r\n", box.ItemsPerBox, box.Product.Name)
	c.screen.Line("Adding new box to stock.")

	buyPrice := box.Product.BuyPrice
	buyPriceChanged := false
	boxTotal, empty, res := c.promptMoney(func() {
		c.screen.Line("Enter box buyprice. Format: [0-9]+\\.[0-9][0-9]")
		c.printMoneyFormatHint()
		c.screen.Printf("Modify or keep [%s]:\r\n", FormatMoney(buyPrice*box.ItemsPerBox))
	})
	if res == flowTimeout {
		return res
	}
	if empty {
		c.screen.Line("Nothing changed.")
	} else {
		buyPrice = boxTotal / box.ItemsPerBox
		buyPriceChanged = true
	}
	c.screen.Line("")

	sellPrice := box.Product.SellPrice
	for {
		c.screen.Line("\r\nEnter box sellprice.")
		if buyPriceChanged {
			sellPrice = c.suggestPrice(creds, buyPrice, box.ItemsPerBox)
		}
		c.screen.Printf("Modify or keep [%s]:\r\n", FormatMoney(sellPrice*box.ItemsPerBox))
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if line == "" {
			if buyPriceChanged {
				c.screen.Line("Using the suggested price.")
			} else {
				c.screen.Line("Nothing changed.")
			}
			break
		}
		if n, valid := ParseMoney(line); valid {
			sellPrice = n / box.ItemsPerBox
			break
		}
		c.screen.Error("Invalid price entered, please retry!")
	}
	c.screen.Line("")

	var boxCount int
	for {
		c.screen.Line("Enter how many boxes to add. Format: [0-9]+")
		c.screen.Line("Modify or keep [0]:")
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if line == "" {
			break
		}
		if digitsRe.MatchString(line) {
			boxCount, _ = strconv.Atoi(line)
			break
		}
		c.screen.Error("Invalid stock entered, please retry!")
	}
	c.screen.Line("")
	if boxCount == 0 {
		c.screen.Line("Added 0 boxes.")
		return flowDone
	}

	if err := c.backend.BuyInBox(creds, barcode, buyPrice, sellPrice, boxCount); err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error(apiErr.Message)
			return flowDone
		}
		c.fatal(err)
	}
	c.screen.Printf("Added %d boxes. Total of %d items.\r\n", boxCount, box.ItemsPerBox*boxCount)
	return flowDone
}

func (c *Controller) buyInProduct(creds *rvapi.Credentials, barcode string) flowResult {
	product, err := c.backend.ProductInfoAdmin(creds, barcode)
	if err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error(apiErr.Message)
			return flowDone
		}
		c.fatal(err)
	}
	c.screen.Line("Adding new products to stock.")

	buyPrice := product.BuyPrice
	buyPriceChanged := false
	entered, empty, res := c.promptMoney(func() {
		c.screen.Line("Enter item buyprice. Format: [0-9]+\\.[0-9][0-9]")
		c.printMoneyFormatHint()
		c.screen.Printf("Modify or keep [%s]:\r\n", FormatMoney(buyPrice))
	})
	if res == flowTimeout {
		return res
	}
	if empty {
		c.screen.Line("Nothing changed.")
	} else {
		buyPrice = entered
		buyPriceChanged = true
	}
	c.screen.Line("")

	sellPrice := product.SellPrice
	for {
		c.screen.Line("\r\nEnter item sellprice.")
		if buyPriceChanged {
			sellPrice = c.suggestPrice(creds, buyPrice, 1)
		}
		c.screen.Printf("Modify or keep [%s]:\r\n", FormatMoney(sellPrice))
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if line == "" {
			if buyPriceChanged {
				c.screen.Line("Using the suggested price.")
			} else {
				c.screen.Line("Nothing changed.")
			}
			break
		}
		if n, valid := ParseMoney(line); valid {
			sellPrice = n
			break
		}
		c.screen.Error("Invalid price entered, please retry!")
	}
	c.screen.Line("")

	var count int
	for {
		c.screen.Line("How many products to add? Format: [0-9]+")
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if digitsRe.MatchString(line) {
			count, _ = strconv.Atoi(line)
			break
		}
		c.screen.Error("Invalid count entered, please retry!")
	}
	c.screen.Line("")
	if count == 0 {
		c.screen.Line("Added 0 products to stock.")
		return flowDone
	}

	if err := c.backend.BuyInProduct(creds, barcode, buyPrice, sellPrice, count); err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error(apiErr.Message)
			return flowDone
		}
		c.fatal(err)
	}
	c.screen.Printf("Added %d products to stock.\r\n", count)
	return flowDone
}

func (c *Controller) changeItemProperties(creds *rvapi.Credentials) flowResult {
	c.screen.Title("Change item properties")
	c.screen.Line("Enter barcode:")
	barcode, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}
	if !digitsRe.MatchString(barcode) {
		c.screen.Error("invalid barcode!")
		c.pause()
		return flowDone
	}

	product, err := c.backend.ProductInfoAdmin(creds, barcode)
	if err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error(apiErr.Message)
		} else {
			c.fatal(err)
		}
	}
	if product != nil {
		return c.changeProductProperties(creds, barcode)
	}
	box, err := c.backend.BoxInfo(creds, barcode)
	if err != nil {
		c.fatal(err)
	}
	if box != nil {
		return c.changeBoxProperties(creds, barcode)
	}
	c.screen.Error("No matching box or product found!")
	return flowDone
}

func (c *Controller) changeBoxProperties(creds *rvapi.Credentials, barcode string) flowResult {
	box, err := c.backend.BoxInfo(creds, barcode)
	if err != nil {
		c.fatal(err)
	}
	if box == nil {
		c.screen.Error("No box found with " + barcode)
		return flowDone
	}

	productBarcode := box.Product.Barcode
	c.screen.Printf("Current itembarcode: '%s'\r\n", productBarcode)
	c.screen.Printf("Modify or keep [%s]:\r\n", productBarcode)
	line, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}
	if line != "" {
		product, err := c.backend.ProductInfo(creds, line)
		if err != nil {
			c.fatal(err)
		}
		if product == nil {
			other, err := c.backend.BoxInfo(creds, line)
			if err != nil {
				c.fatal(err)
			}
			if other != nil {
				c.screen.Error("Box with the given barcode already exists!")
				return flowDone
			}
			if c.newProduct(creds, line) == flowTimeout {
				return flowTimeout
			}
			created, err := c.backend.ProductInfo(creds, line)
			if err != nil {
				c.fatal(err)
			}
			if created == nil {
				c.screen.Error("Adding new item failed!")
				return flowDone
			}
		}
		productBarcode = line
	} else {
		c.screen.Line("Nothing changed.")
	}

	itemsPerBox := box.ItemsPerBox
	for {
		c.screen.Printf("Current items per box: '%d'\r\n", itemsPerBox)
		c.screen.Printf("Modify or keep [%d] Format: [1-9][0-9]*:\r\n", itemsPerBox)
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if line == "" {
			c.screen.Line("Nothing changed.")
			break
		}
		if countRe.MatchString(line) {
			itemsPerBox, _ = strconv.Atoi(line)
			break
		}
		c.screen.Error("Invalid number entered, please retry!")
	}

	if err := c.backend.UpdateBox(creds, barcode, itemsPerBox, productBarcode); err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error("Modifying box failed: " + apiErr.Message)
			return flowDone
		}
		c.fatal(err)
	}
	c.screen.Line("Box modified successfully.")
	c.screen.Line("")
	return flowDone
}

func (c *Controller) changeProductProperties(creds *rvapi.Credentials, barcode string) flowResult {
	product, err := c.backend.ProductInfoAdmin(creds, barcode)
	if err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error(apiErr.Message)
			return flowDone
		}
		c.fatal(err)
	}

	name := product.Name
	c.screen.Printf("Current description: '%s'\r\n", name)
	c.screen.Printf("Modify or keep [%s]:\r\n", name)
	line, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}
	if line != "" {
		name = line
	} else {
		c.screen.Line("Nothing changed.")
	}
	c.screen.Line("")

	buyPrice := product.BuyPrice
	buyPriceChanged := false
	entered, empty, res := c.promptMoney(func() {
		c.screen.Line("Please enter item buyprice. Format: [0-9]+\\.[0-9][0-9]")
		c.printMoneyFormatHint()
		c.screen.Printf("Modify or keep [%s]:\r\n", FormatMoney(buyPrice))
	})
	if res == flowTimeout {
		return res
	}
	if empty {
		c.screen.Line("Nothing changed.")
	} else {
		buyPrice = entered
		buyPriceChanged = true
	}
	c.screen.Line("")

	sellPrice := product.SellPrice
	for {
		c.screen.Line("\r\nPlease enter item sellprice.")
		if buyPriceChanged {
			sellPrice = c.suggestPrice(creds, buyPrice, 1)
		}
		c.screen.Printf("Modify or keep [%s]:\r\n", FormatMoney(sellPrice))
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if line == "" {
			if buyPriceChanged {
				c.screen.Line("Using the suggested price.")
			} else {
				c.screen.Line("Nothing changed.")
			}
			break
		}
		if n, valid := ParseMoney(line); valid {
			sellPrice = n
			break
		}
		c.screen.Error("Invalid price entered, please retry!")
	}
	c.screen.Line("")

	stock := product.Stock
	for {
		c.screen.Line("Please enter item stock. Format: (+|-)?[0-9]+")
		c.screen.Line("No prefix or - means to set stock to negative or positive number given. + prefix means to increment stock e.g. +5 when stock is 2 results in stock of 7.")
		c.screen.Printf("Modify or keep [%d]:\r\n", stock)
		line, ok := c.readLine(c.cfg.LongTimeout)
		if !ok {
			return c.timedOut()
		}
		if line == "" {
			c.screen.Line("Nothing changed.")
			break
		}
		if n, valid := ParseStockDelta(line, stock); valid {
			stock = n
			break
		}
		c.screen.Error("Invalid stock entered, please retry!")
	}
	c.screen.Line("")

	category, res := c.promptCategory(creds, &product.Category)
	if res == flowTimeout {
		return res
	}

	if err := c.backend.UpdateProduct(creds, barcode, name, category.CategoryID, buyPrice, sellPrice, stock); err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error(apiErr.Message)
			return flowDone
		}
		c.fatal(err)
	}
	c.screen.Line("Product updated.")
	return flowDone
}

func (c *Controller) changePasswordAdmin(creds *rvapi.Credentials) flowResult {
	c.screen.Title("Change password (admin)")
	c.screen.Print("Enter username: ")
	username, ok := c.readLine(c.cfg.LongTimeout)
	if !ok {
		return c.timedOut()
	}

	user, err := c.backend.UserByUsername(creds, username)
	if err != nil {
		if apiErr, isAPI := rvapi.IsAPIError(err); isAPI {
			c.screen.Error(apiErr.Message)
			c.screen.Line("")
			return flowDone
		}
		c.fatal(err)
	}

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
		if err := c.backend.ChangePasswordAdmin(creds, user.UserID, password1); err != nil {
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
